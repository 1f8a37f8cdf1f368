// Package mail implements welcome-notification delivery.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// Config captures SMTP relay settings. An empty Host selects the log-only
// notifier instead.
type Config struct {
	Host string
	Port string
	From string
}

// SMTPNotifier delivers welcome emails through a plain SMTP relay.
type SMTPNotifier struct {
	cfg Config
	log zerolog.Logger
}

func NewSMTPNotifier(cfg Config, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

func (n *SMTPNotifier) NotifyUserCreated(_ context.Context, event ports.UserCreatedEvent) error {
	msg := buildWelcomeMessage(n.cfg.From, event)

	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)
	if err := smtp.SendMail(addr, nil, n.cfg.From, []string{event.User.Email}, msg); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

// buildWelcomeMessage renders the one message that ever carries the plaintext
// password. The password has no expiry attached, so the mail urges an
// immediate change.
func buildWelcomeMessage(from string, event ports.UserCreatedEvent) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", event.User.Email)
	fmt.Fprintf(&b, "Subject: Your account has been created\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", event.User.Name)
	b.WriteString("An administrator created an account for you.\r\n\r\n")
	fmt.Fprintf(&b, "Email: %s\r\n", event.User.Email)
	fmt.Fprintf(&b, "Temporary password: %s\r\n\r\n", event.PlaintextPassword)
	b.WriteString("Please sign in and change this password right away.\r\n")
	return []byte(b.String())
}

// LogNotifier is the development fallback: it records that a notification
// would have been sent, without the plaintext password.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyUserCreated(_ context.Context, event ports.UserCreatedEvent) error {
	n.log.Info().
		Str("user_id", event.User.ID).
		Str("email", event.User.Email).
		Msg("welcome notification (log only, no SMTP host configured)")
	return nil
}
