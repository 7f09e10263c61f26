package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/callback-service/internal/events"
)

// ReminderService turns domain events into operator-visible notifications.
type ReminderService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReminderService creates the service.
func NewReminderService(dispatcher events.Dispatcher, logger *zap.Logger) *ReminderService {
	return &ReminderService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (r *ReminderService) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(events.EventCallbackCreated, r.handleCallbackCreated)
	r.dispatcher.Subscribe(events.EventCallbackUpdated, r.handleCallbackUpdated)
	r.dispatcher.Subscribe(events.EventCheckRecorded, r.handleCheckRecorded)
	r.dispatcher.Subscribe(events.EventAgentAdded, r.handleAgentAdded)
}

func (r *ReminderService) handleCallbackCreated(ctx context.Context, event events.Event) error {
	r.logger.Info("CallbackCreated", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (r *ReminderService) handleCallbackUpdated(ctx context.Context, event events.Event) error {
	r.logger.Info("CallbackUpdated", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (r *ReminderService) handleCheckRecorded(ctx context.Context, event events.Event) error {
	r.logger.Info("CheckRecorded", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (r *ReminderService) handleAgentAdded(ctx context.Context, event events.Event) error {
	r.logger.Info("AgentAdded", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}
