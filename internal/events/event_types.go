package events

import (
	"time"

	"github.com/spec-kit/callback-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCallbackCreated EventType = "callback_created"
	EventCallbackUpdated EventType = "callback_updated"
	EventCheckRecorded   EventType = "check_recorded"
	EventAgentAdded      EventType = "agent_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type      domain.SubjectType `json:"type"`
	AgentName *string            `json:"agent_name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  string      `json:"record_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CallbackCreatedPayload payload.
type CallbackCreatedPayload struct {
	AgentName    string              `json:"agent_name"`
	FullName     string              `json:"full_name"`
	CallbackDate string              `json:"callback_date"`
	CallbackType domain.CallbackType `json:"callback_type"`
}

// CallbackUpdatedPayload payload.
type CallbackUpdatedPayload struct {
	AgentName    string              `json:"agent_name"`
	FullName     string              `json:"full_name"`
	CallbackDate string              `json:"callback_date"`
	CallbackType domain.CallbackType `json:"callback_type"`
}

// CheckRecordedPayload payload.
type CheckRecordedPayload struct {
	AgentName string           `json:"agent_name"`
	Plan      domain.CheckPlan `json:"plan"`
	Date      string           `json:"date"`
}

// AgentAddedPayload payload.
type AgentAddedPayload struct {
	AgentName string `json:"agent_name"`
}
