package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventboard/internal/domain"
)

type moderationNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewModerationNotifier returns a ModerationNotifier that mails the initiator
// using the given Mailer and template renderer.
func NewModerationNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.ModerationNotifier {
	return &moderationNotifier{mailer: mailer, renderer: renderer, logger: logger}
}

// EventPublished sends the "event_published" template to the initiator.
func (n *moderationNotifier) EventPublished(ctx context.Context, e *domain.Event) error {
	return n.send(ctx, "event_published", e)
}

// EventRejected sends the "event_rejected" template to the initiator.
func (n *moderationNotifier) EventRejected(ctx context.Context, e *domain.Event) error {
	return n.send(ctx, "event_rejected", e)
}

func (n *moderationNotifier) send(ctx context.Context, template string, e *domain.Event) error {
	if e == nil {
		return fmt.Errorf("%s: event is nil", template)
	}
	data := &domain.ModerationEmailData{
		Email:     e.Initiator.Email,
		Name:      e.Initiator.Name,
		EventID:   e.ID,
		Title:     e.Title,
		EventDate: e.EventDate.Format(domain.DateTimeLayout),
	}
	subject, htmlBody, textBody, err := n.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := n.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	n.logger.InfoContext(ctx, "moderation email sent", "template", template, "event_id", e.ID, "to", data.Email)
	return nil
}
