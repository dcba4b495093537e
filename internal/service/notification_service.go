package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intake/internal/config"
	"github.com/spec-kit/ticket-intake/internal/events"
)

// NotificationService emits notifications for domain events. Delivery is
// stubbed out as log lines.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// Notify handles a single event. Unknown event types are ignored.
func (n *NotificationService) Notify(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventTicketCreated:
		return n.handleTicketCreated(ctx, event)
	default:
		return nil
	}
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	fields := []zap.Field{zap.Int64("ticket_id", event.TicketID)}
	if payload, ok := event.Payload.(events.TicketCreatedPayload); ok {
		fields = append(fields, zap.String("team", string(payload.Team)), zap.String("issue_type", payload.IssueType))
	}
	n.logger.Info("TicketCreated", fields...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok || strings.TrimSpace(payload.Email) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", payload.Email),
		zap.Int64("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
