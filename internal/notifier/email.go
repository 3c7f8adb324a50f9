package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"oppwatch/internal/config"
	"oppwatch/internal/errorwrapper"
	"oppwatch/internal/models"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

// EmailNotifier delivers events over SMTP.
type EmailNotifier struct {
	cfg       config.EmailConfig
	formatter *Formatter
	logger    zerolog.Logger
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg config.EmailConfig, formatter *Formatter, logger zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:       cfg,
		formatter: formatter,
		logger:    logger.With().Str("component", "EmailNotifier").Logger(),
	}
}

// Name implements Notifier.
func (n *EmailNotifier) Name() string { return "email" }

// Notify implements Notifier. The context is accepted for interface
// symmetry; net/smtp does not support cancellation mid-send.
func (n *EmailNotifier) Notify(_ context.Context, event models.TransitionEvent) error {
	if n.cfg.FromAddress == "" || n.cfg.Password == "" {
		return errorwrapper.NewError("email notifier is missing sender address or password")
	}

	to := n.cfg.ToAddress
	if to == "" {
		to = n.cfg.FromAddress
	}

	mail := email.NewEmail()
	mail.From = n.cfg.FromAddress
	mail.To = []string{to}
	mail.Subject = n.formatter.Subject(event)
	mail.Text = []byte(n.formatter.Body(event))

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.SMTPPort)
	err := mail.Send(addr, smtp.PlainAuth("", n.cfg.FromAddress, n.cfg.Password, n.cfg.SMTPServer))
	if err != nil {
		return errorwrapper.WrapError(err, "failed to send notification email")
	}
	return nil
}
