package service

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/syncfit/syncfit-backend/internal/config"
	"github.com/syncfit/syncfit-backend/internal/observability"
)

// SMTPMailer delivers verification codes over SMTP.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, n CodeNotification) error {
	subject, body := renderCodeMessage(n)

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.SMTPFromName, m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(n.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.SMTPUsername != "" && m.cfg.SMTPPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUsername),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		observability.RecordEmailDelivery(ctx, n.Flow, "error")
		return fmt.Errorf("create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		observability.RecordEmailDelivery(ctx, n.Flow, "error")
		return fmt.Errorf("send verification email: %w", err)
	}
	observability.RecordEmailDelivery(ctx, n.Flow, "success")
	return nil
}

func renderCodeMessage(n CodeNotification) (subject, body string) {
	name := n.Name
	if name == "" {
		name = "there"
	}
	minutes := int(time.Until(n.ExpiresAt).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	switch n.Flow {
	case "login":
		subject = "Your SyncFit login code"
	default:
		subject = "Verify your SyncFit account"
	}
	body = fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nIf you did not request this, you can ignore this email.\n", name, n.Code, minutes)
	return subject, body
}
