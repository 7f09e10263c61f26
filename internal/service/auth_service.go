package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/config"
	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/repository"
	apperrors "github.com/spec-kit/callback-service/pkg/util"
)

// defaultAgents seed the roster on first login against an empty table,
// mirroring the bootstrap rows of the spreadsheet this service replaced.
var defaultAgents = []struct {
	Name string
	Code string
}{
	{Name: "John Doe", Code: "JD123"},
	{Name: "Jane Smith", Code: "JS456"},
}

// AuthService coordinates agent login and admin unlock flows.
type AuthService struct {
	agents            repository.AgentRepository
	sessions          auth.SessionStore
	tokenMgr          *auth.TokenManager
	logger            *zap.Logger
	bcryptCost        int
	adminPasswordHash string
	seedDefaults      bool
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AgentRepo    repository.AgentRepository
	SessionStore auth.SessionStore
	Logger       *zap.Logger
}

// NewAuthService builds the service. The admin password is hashed once at
// startup; only the hash is held in memory.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	adminHash, err := auth.HashSecret(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		agents:            deps.AgentRepo,
		sessions:          deps.SessionStore,
		tokenMgr:          auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:            deps.Logger,
		bcryptCost:        cfg.Auth.BcryptCost,
		adminPasswordHash: adminHash,
		seedDefaults:      cfg.Roster.SeedDefaults,
	}, nil
}

// LoginAgent authenticates an agent by exact roster name and code. An empty
// roster is seeded with the default agents first, so a fresh deployment is
// immediately usable.
func (s *AuthService) LoginAgent(ctx context.Context, name, code string) (*domain.Agent, string, time.Time, error) {
	if err := s.ensureRosterSeeded(ctx); err != nil {
		return nil, "", time.Time{}, err
	}

	agent, err := s.agents.GetByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid name or code")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.CompareSecret(agent.CodeHash, code); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid name or code")
	}

	token, session, err := s.issueSession(ctx, domain.SubjectTypeAgent, agent.Name)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.logger.Info("agent logged in", zap.String("agent", agent.Name))
	return agent, token, session.ExpiresAt, nil
}

// UnlockAdmin grants admin access when the password matches the configured
// constant. Any other input gets the same generic rejection.
func (s *AuthService) UnlockAdmin(ctx context.Context, password string) (string, time.Time, error) {
	if err := auth.CompareSecret(s.adminPasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid password")
	}
	token, session, err := s.issueSession(ctx, domain.SubjectTypeAdmin, "")
	if err != nil {
		return "", time.Time{}, err
	}
	s.logger.Info("admin console unlocked")
	return token, session.ExpiresAt, nil
}

// Logout deletes the server-side session; the token is dead afterwards even
// though it has not expired.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// RosterNames lists agent names for the login screen selector.
func (s *AuthService) RosterNames(ctx context.Context) ([]string, error) {
	if err := s.ensureRosterSeeded(ctx); err != nil {
		return nil, err
	}
	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(agents))
	for _, agent := range agents {
		names = append(names, agent.Name)
	}
	return names, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueSession(ctx context.Context, subject domain.SubjectType, agentName string) (string, *domain.Session, error) {
	token, session, err := s.tokenMgr.GenerateToken(subject, agentName)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Put(ctx, session.ID, string(subject), s.tokenMgr.TTL()); err != nil {
		return "", nil, err
	}
	return token, session, nil
}

func (s *AuthService) ensureRosterSeeded(ctx context.Context) error {
	if !s.seedDefaults {
		return nil
	}
	count, err := s.agents.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, seed := range defaultAgents {
		hash, err := auth.HashSecret(seed.Code, s.bcryptCost)
		if err != nil {
			return err
		}
		agent := &domain.Agent{Name: strings.TrimSpace(seed.Name), CodeHash: hash}
		if err := s.agents.Create(ctx, agent); err != nil {
			return err
		}
		s.logger.Info("seeded default agent", zap.String("agent", agent.Name))
	}
	return nil
}
