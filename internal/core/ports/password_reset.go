package ports

import (
	"context"
	"time"
)

// ResetTokenStore keeps password-reset token digests until they expire or are consumed.
type ResetTokenStore interface {
	Save(ctx context.Context, digest, principalID string, ttl time.Duration) error
	// Consume returns the principal bound to digest and deletes the entry.
	Consume(ctx context.Context, digest string) (string, error)
}

// Mail is a single outbound message.
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers mail.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// MailQueue accepts mail for asynchronous delivery.
type MailQueue interface {
	Enqueue(mail Mail) error
}

// PasswordResetService drives the forgot-password flow.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
