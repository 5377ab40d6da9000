// Package mail provides ports.Mailer implementations.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

// LogMailer records outbound mail in the structured log instead of delivering
// it. Message bodies are not logged because they carry reset links.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, mail ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Int("html_bytes", len(mail.HTMLBody)).
		Msg("mail accepted for delivery")
	return nil
}
