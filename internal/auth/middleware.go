package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/repository"
	apperrors "github.com/spec-kit/callback-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	SessionID   string
	Agent       *domain.Agent
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions SessionStore
	agents   repository.AgentRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionStore, agents repository.AgentRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, agents: agents}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	live, err := m.sessions.Exists(c.Context(), claims.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !live {
		return apperrors.NewUnauthorized("session expired")
	}

	principal := &Principal{SubjectType: claims.Subject, SessionID: claims.ID}

	switch claims.Subject {
	case domain.SubjectTypeAgent:
		agent, err := m.agents.GetByName(c.Context(), claims.AgentName)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("agent not found")
			}
			return apperrors.MapError(err)
		}
		principal.Agent = agent
	case domain.SubjectTypeAdmin:
		// no roster row to load
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
