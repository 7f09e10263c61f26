package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/events"
	"github.com/spec-kit/callback-service/internal/repository"
	apperrors "github.com/spec-kit/callback-service/pkg/util"
)

// RosterService manages the agent roster for the admin console.
type RosterService struct {
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewRosterService constructs the service.
func NewRosterService(agents repository.AgentRepository, dispatcher events.Dispatcher, bcryptCost int) *RosterService {
	return &RosterService{agents: agents, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// ListAgents returns the full roster.
func (s *RosterService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

// AddAgent appends a roster row. Name and code are both required; a duplicate
// name is rejected since it would make login ambiguous.
func (s *RosterService) AddAgent(ctx context.Context, name, code string) (*domain.Agent, error) {
	name = strings.TrimSpace(name)
	details := map[string]any{}
	if name == "" {
		details["name"] = "required"
	}
	if code == "" {
		details["code"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("please fill in both fields", details)
	}

	if _, err := s.agents.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("agent name already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashSecret(code, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	agent := &domain.Agent{Name: name, CodeHash: hash}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAgentAdded,
			RecordID:  agent.ID,
			Actor:     events.Actor{Type: domain.SubjectTypeAdmin},
			Timestamp: time.Now(),
			Payload:   events.AgentAddedPayload{AgentName: agent.Name},
		})
	}
	return agent, nil
}
