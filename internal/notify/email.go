package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// EmailConfig holds SMTP settings for the email notifier.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier delivers notifications over SMTP.
type EmailNotifier struct {
	cfg    EmailConfig
	logger zerolog.Logger
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(cfg EmailConfig, logger zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger.With().Str("notifier", "email").Logger(),
	}
}

// subjects per template key
var subjects = map[string]string{
	TemplateOrderConfirmed: "Your order is confirmed",
	TemplateOrderShipped:   "Your order has shipped",
	TemplateOrderDelivered: "Your order has been delivered",
}

// Notify sends one templated email. Failures are returned to the caller,
// which logs them; delivery is never retried here.
func (n *EmailNotifier) Notify(ctx context.Context, recipient, template string, data map[string]string) error {
	subject, ok := subjects[template]
	if !ok {
		subject = "Update on your order"
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, renderBody(template, data))

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	n.logger.Debug().
		Str("recipient", recipient).
		Str("template", template).
		Msg("sending notification email")

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}

// renderBody produces the plain-text body for a template.
func renderBody(template string, data map[string]string) string {
	orderNumber := data["orderNumber"]
	switch template {
	case TemplateOrderConfirmed:
		return fmt.Sprintf("Order %s is confirmed and being prepared.", orderNumber)
	case TemplateOrderShipped:
		return fmt.Sprintf("Order %s is on its way.", orderNumber)
	case TemplateOrderDelivered:
		return fmt.Sprintf("Order %s has been delivered. We hope you enjoy it.", orderNumber)
	default:
		return fmt.Sprintf("There is an update on order %s.", orderNumber)
	}
}
