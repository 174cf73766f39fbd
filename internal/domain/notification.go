package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ModerationEmailData holds data for the moderation outcome email.
type ModerationEmailData struct {
	Email     string
	Name      string
	EventID   int64
	Title     string
	EventDate string
}

// ModerationNotifier tells an initiator the outcome of an admin decision.
type ModerationNotifier interface {
	EventPublished(ctx context.Context, e *Event) error
	EventRejected(ctx context.Context, e *Event) error
}

// TokenIssuer signs bearer tokens for operators.
type TokenIssuer interface {
	Issue(subject string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns its subject and roles.
type TokenVerifier interface {
	Verify(token string) (subject string, roles []string, err error)
}

// RoleAdmin is the role required on administrative routes.
const RoleAdmin = "admin"
