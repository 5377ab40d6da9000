package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

const (
	DefaultResetTokenTTL = time.Hour
	resetMailSubject     = "Password Reset Request - Hotel Management"
)

var resetMailTemplate = template.Must(template.New("reset").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Password Reset Request</h2>
  <p>Hello {{.Username}},</p>
  <p>We received a request to reset the password for the account associated with this email address.</p>
  <p>The link below expires in {{.TTL}}.</p>
  <p><a href="{{.Link}}">Reset your password</a></p>
  <p>If the link does not work, copy this URL into your browser: {{.Link}}</p>
  <p>If you did not request a password reset, ignore this email.</p>
</div>`))

// PasswordResetService issues single-use reset tokens and applies new passwords.
type PasswordResetService struct {
	principals ports.PrincipalRepository
	store      ports.ResetTokenStore
	mail       ports.MailQueue
	baseURL    string
	ttl        time.Duration
	newToken   func() string
	log        zerolog.Logger
}

func NewPasswordResetService(
	principals ports.PrincipalRepository,
	store ports.ResetTokenStore,
	mail ports.MailQueue,
	baseURL string,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &PasswordResetService{
		principals: principals,
		store:      store,
		mail:       mail,
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        ttl,
		newToken:   uuid.NewString,
		log:        log,
	}
}

// RequestReset mails a reset link when email belongs to a principal. Unknown
// addresses succeed silently so callers cannot enumerate accounts.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if email == "" || len(email) > MaxCredentialLength {
		return domain.ErrValidation
	}

	principal, err := s.principals.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		metrics.PasswordResetRequestsTotal.WithLabelValues("unknown").Inc()
		s.log.Info().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("password reset lookup failed")
		return fmt.Errorf("password reset: %w", domain.ErrUpstreamUnavailable)
	}

	token := s.newToken()
	if err := s.store.Save(ctx, digestResetToken(token), principal.ID, s.ttl); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("principal_id", principal.ID).Msg("failed to store reset token")
		return fmt.Errorf("password reset: %w", domain.ErrUpstreamUnavailable)
	}

	mail, err := s.buildMail(principal, token)
	if err != nil {
		return err
	}
	if err := s.mail.Enqueue(mail); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("principal_id", principal.ID).Msg("failed to queue reset mail")
		return fmt.Errorf("password reset: %w", domain.ErrUpstreamUnavailable)
	}

	metrics.PasswordResetRequestsTotal.WithLabelValues("queued").Inc()
	s.log.Info().Str("principal_id", principal.ID).Msg("password reset mail queued")
	return nil
}

// ResetPassword consumes token and replaces the principal's credential secret.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrValidation
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	principalID, err := s.store.Consume(ctx, digestResetToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			return err
		}
		s.log.Error().Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset password: %w", domain.ErrUpstreamUnavailable)
	}

	if err := s.principals.UpdatePasswordHash(ctx, principalID, hash); err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return domain.ErrResetTokenInvalid
		}
		s.log.Error().Err(err).Str("principal_id", principalID).Msg("password update failed")
		return fmt.Errorf("reset password: %w", domain.ErrUpstreamUnavailable)
	}

	s.log.Info().Str("principal_id", principalID).Msg("password reset completed")
	return nil
}

func (s *PasswordResetService) buildMail(principal *domain.Principal, token string) (ports.Mail, error) {
	link := s.baseURL + "/reset-password?token=" + url.QueryEscape(token)

	var body bytes.Buffer
	err := resetMailTemplate.Execute(&body, struct {
		Username string
		Link     string
		TTL      time.Duration
	}{principal.Username, link, s.ttl})
	if err != nil {
		return ports.Mail{}, fmt.Errorf("render reset mail: %w", err)
	}

	return ports.Mail{
		To:       principal.Email,
		Subject:  resetMailSubject,
		HTMLBody: body.String(),
		TextBody: "Reset your password: " + link,
	}, nil
}

// digestResetToken is the only form of a reset token that is ever stored.
func digestResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
