package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/events"
	"github.com/spec-kit/callback-service/internal/repository"
	apperrors "github.com/spec-kit/callback-service/pkg/util"
)

// CheckService coordinates plan check records.
type CheckService struct {
	checks     repository.CheckRepository
	dispatcher events.Dispatcher
}

// CheckInput describes the submit payload.
type CheckInput struct {
	Plan domain.CheckPlan
	Date string
}

// NewCheckService constructs the service.
func NewCheckService(checks repository.CheckRepository, dispatcher events.Dispatcher) *CheckService {
	return &CheckService{checks: checks, dispatcher: dispatcher}
}

// Submit validates and appends a check bound to the logged-in agent.
func (s *CheckService) Submit(ctx context.Context, agentName string, input CheckInput) (*domain.Check, error) {
	details := map[string]any{}
	if !domain.ValidCheckPlan(input.Plan) {
		details["plan"] = "must be HMO, PPO or OPlan"
	}
	if strings.TrimSpace(input.Date) == "" {
		input.Date = time.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, input.Date); err != nil {
		details["date"] = "must be YYYY-MM-DD"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("please fill in the required fields", details)
	}

	check := &domain.Check{
		AgentName: agentName,
		Plan:      input.Plan,
		Date:      input.Date,
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCheckRecorded,
			RecordID:  check.ID,
			Actor:     agentActor(agentName),
			Timestamp: time.Now(),
			Payload: events.CheckRecordedPayload{
				AgentName: check.AgentName,
				Plan:      check.Plan,
				Date:      check.Date,
			},
		})
	}
	return check, nil
}

// List returns checks, optionally narrowed to one agent.
func (s *CheckService) List(ctx context.Context, agentName *string) ([]domain.Check, error) {
	return s.checks.ListWithFilter(ctx, repository.CheckFilter{AgentName: agentName})
}
