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

// previewLimit caps the notes and medical-conditions text shown on summary
// cards.
const previewLimit = 120

// CallbackService coordinates callback record workflows.
type CallbackService struct {
	callbacks  repository.CallbackRepository
	dispatcher events.Dispatcher
}

// CallbackInput describes the submit/edit payload. All dates are YYYY-MM-DD
// strings.
type CallbackInput struct {
	FullName          string
	Address           string
	MCN               string
	DOB               string
	PhoneNumber       string
	Notes             string
	MedicalConditions string
	CallbackDate      string
	CallbackTiming    string
	CallbackType      domain.CallbackType
}

// CallbackSummary is a list row with long text fields truncated for display.
type CallbackSummary struct {
	Callback                 domain.Callback
	NotesPreview             string
	MedicalConditionsPreview string
}

// NewCallbackService constructs the service.
func NewCallbackService(callbacks repository.CallbackRepository, dispatcher events.Dispatcher) *CallbackService {
	return &CallbackService{callbacks: callbacks, dispatcher: dispatcher}
}

// Submit validates and appends a callback bound to the logged-in agent.
func (s *CallbackService) Submit(ctx context.Context, agentName string, input CallbackInput) (*domain.Callback, error) {
	if err := validateCallbackInput(&input); err != nil {
		return nil, err
	}

	callback := &domain.Callback{
		AgentName:         agentName,
		FullName:          strings.TrimSpace(input.FullName),
		Address:           input.Address,
		MCN:               input.MCN,
		DOB:               input.DOB,
		PhoneNumber:       input.PhoneNumber,
		Notes:             input.Notes,
		MedicalConditions: input.MedicalConditions,
		CallbackDate:      input.CallbackDate,
		CallbackTiming:    input.CallbackTiming,
		CallbackType:      input.CallbackType,
	}

	if err := s.callbacks.Create(ctx, callback); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCallbackCreated,
		RecordID: callback.ID,
		Actor:    agentActor(agentName),
		Payload: events.CallbackCreatedPayload{
			AgentName:    callback.AgentName,
			FullName:     callback.FullName,
			CallbackDate: callback.CallbackDate,
			CallbackType: callback.CallbackType,
		},
	})
	return callback, nil
}

// ListOwn returns the agent's callbacks in original submission order, with
// display previews of the long text fields.
func (s *CallbackService) ListOwn(ctx context.Context, agentName string) ([]CallbackSummary, error) {
	rows, err := s.callbacks.ListWithFilter(ctx, repository.CallbackFilter{AgentName: &agentName})
	if err != nil {
		return nil, err
	}
	summaries := make([]CallbackSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, CallbackSummary{
			Callback:                 row,
			NotesPreview:             textPreview(row.Notes, previewLimit),
			MedicalConditionsPreview: textPreview(row.MedicalConditions, previewLimit),
		})
	}
	return summaries, nil
}

// ListAll returns every callback, optionally narrowed to one agent. Admin use.
func (s *CallbackService) ListAll(ctx context.Context, agentName *string) ([]domain.Callback, error) {
	return s.callbacks.ListWithFilter(ctx, repository.CallbackFilter{AgentName: agentName})
}

// Edit overwrites a callback identified by its stable ID, after an ownership
// check. Position-in-table addressing from the legacy system is gone; an
// insert racing this update can no longer redirect it to the wrong row.
func (s *CallbackService) Edit(ctx context.Context, agentName, id string, input CallbackInput) (*domain.Callback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid callback id", nil)
	}
	callback, err := s.callbacks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callback.AgentName != agentName {
		return nil, apperrors.NewForbidden("callback belongs to another agent")
	}
	if err := validateCallbackInput(&input); err != nil {
		return nil, err
	}

	callback.FullName = strings.TrimSpace(input.FullName)
	callback.Address = input.Address
	callback.MCN = input.MCN
	callback.DOB = input.DOB
	callback.PhoneNumber = input.PhoneNumber
	callback.Notes = input.Notes
	callback.MedicalConditions = input.MedicalConditions
	callback.CallbackDate = input.CallbackDate
	callback.CallbackTiming = input.CallbackTiming
	callback.CallbackType = input.CallbackType

	if err := s.callbacks.Update(ctx, callback); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCallbackUpdated,
		RecordID: callback.ID,
		Actor:    agentActor(agentName),
		Payload: events.CallbackUpdatedPayload{
			AgentName:    callback.AgentName,
			FullName:     callback.FullName,
			CallbackDate: callback.CallbackDate,
			CallbackType: callback.CallbackType,
		},
	})
	return callback, nil
}

func validateCallbackInput(input *CallbackInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.FullName) == "" {
		details["full_name"] = "required"
	}
	if strings.TrimSpace(input.CallbackDate) == "" {
		details["callback_date"] = "required"
	} else if _, err := time.Parse(domain.DateLayout, input.CallbackDate); err != nil {
		details["callback_date"] = "must be YYYY-MM-DD"
	}
	if input.DOB != "" {
		if _, err := time.Parse(domain.DateLayout, input.DOB); err != nil {
			details["dob"] = "must be YYYY-MM-DD"
		}
	}
	if input.CallbackType == "" {
		input.CallbackType = domain.CallbackTypeCold
	} else if !domain.ValidCallbackType(input.CallbackType) {
		details["callback_type"] = "must be cold, warm or hot"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("please fill in the required fields", details)
	}
	return nil
}

func textPreview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

func (s *CallbackService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func agentActor(agentName string) events.Actor {
	return events.Actor{
		Type:      domain.SubjectTypeAgent,
		AgentName: &agentName,
	}
}
