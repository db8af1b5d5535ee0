// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/wneessen/go-mail"

	"codeberg.org/diningguru/backend/internal/config"
	"codeberg.org/diningguru/backend/internal/i18n"
)

// SendTimeout bounds a single SMTP conversation.
const SendTimeout = 15 * time.Second

// Sender delivers verification codes to users.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error
}

// New returns an SMTP sender, or a sender that only logs the message when
// no SMTP host is configured.
func New(cfg *config.SMTPConfig, logger *slog.Logger) (Sender, error) {
	if cfg.Host == "" {
		logger.Warn("no SMTP host configured, verification codes will only be logged")
		return NewLogSender(logger), nil
	}
	return NewService(cfg)
}

// Service sends mail via SMTP.
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new SMTP email service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg}, nil
}

// SendVerificationCode mails a verification code in the locale stored in ctx.
func (s *Service) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	subject, body := Compose(ctx, code, ttl)
	return s.send(ctx, to, subject, body)
}

// send sends an email via SMTP using go-mail.
func (s *Service) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(SendTimeout),
	}

	// Implicit TLS on 465, STARTTLS otherwise
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// LogSender writes verification codes to the log instead of mailing them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that writes codes to logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendVerificationCode logs the code and the localized subject.
func (s *LogSender) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	subject, _ := Compose(ctx, code, ttl)
	s.logger.InfoContext(ctx, "verification code",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("code", code),
		slog.Duration("ttl", ttl),
	)
	return nil
}

// Compose renders the localized subject and body of a verification mail.
func Compose(ctx context.Context, code string, ttl time.Duration) (string, string) {
	minutes := int(math.Ceil(ttl.Minutes()))

	subject := i18n.T(ctx, "verification_code_subject")
	body := i18n.TData(ctx, "verification_code_body", map[string]any{
		"Code": code,
	})
	body += "\n" + i18n.TPlural(ctx, "verification_code_expiry", minutes) + "\n"

	return subject, body
}
