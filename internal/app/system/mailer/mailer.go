// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/email"
	"go.uber.org/zap"
)

// Email is one outgoing message with plain-text and HTML alternatives.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers e-mail. Handlers depend on this so tests can record
// messages instead of talking to an SMTP server.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// UseSSL selects implicit TLS (usually port 465); otherwise STARTTLS is
	// required.
	UseSSL  bool
	Timeout time.Duration
}

// Mailer sends e-mail through an SMTP relay. With no Host configured it
// only logs the message, which is what local development wants.
type Mailer struct {
	cfg    Config
	log    *zap.Logger
	sender *email.Sender
}

// New builds a Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	m := &Mailer{cfg: cfg, log: logger}
	if cfg.Host != "" {
		m.sender = email.NewSender(email.Config{
			Host:        cfg.Host,
			Port:        cfg.Port,
			Username:    cfg.Username,
			Password:    cfg.Password,
			FromAddress: cfg.From,
			FromName:    cfg.FromName,
			UseSSL:      cfg.UseSSL,
			Timeout:     cfg.Timeout,
		})
	}
	return m
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.sender != nil }

// Send delivers e.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return errors.New("mailer: empty recipient")
	}
	if !m.Enabled() {
		m.log.Info("smtp not configured; e-mail not sent",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}
	if err := m.sender.SendHTML(ctx, e.To, e.Subject, e.TextBody, e.HTMLBody); err != nil {
		return err
	}
	m.log.Info("e-mail sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}
