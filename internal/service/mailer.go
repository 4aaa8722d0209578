package service

import (
	"context"
	"log/slog"
	"time"
)

// CodeNotification carries a one-time verification code to a mailbox.
type CodeNotification struct {
	Email     string
	Name      string
	Code      string
	ExpiresAt time.Time
	// Flow is "registration" or "login"; it selects the message template.
	Flow string
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, n CodeNotification) error
}

// DevMailer logs codes instead of delivering them. Used when
// EMAIL_DEV_MODE is set, which is the default in local-like environments.
type DevMailer struct {
	logger *slog.Logger
}

func NewDevMailer(logger *slog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (m *DevMailer) SendVerificationCode(ctx context.Context, n CodeNotification) error {
	m.logger.InfoContext(ctx, "verification code issued",
		"email", n.Email,
		"flow", n.Flow,
		"code", n.Code,
		"expires_at", n.ExpiresAt,
	)
	return nil
}
