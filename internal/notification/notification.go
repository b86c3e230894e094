package notification

import (
	"context"
	"log/slog"
)

// Mailer delivers email to a single recipient. Delivery is best effort;
// callers log failures and move on.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMS delivers a text message to a single phone number.
type SMS interface {
	SendSMS(ctx context.Context, to, body string) error
}

// LoggerMailer is a stub implementation that writes email to the logger.
// Used in dev mode and tests.
type LoggerMailer struct {
	logger *slog.Logger
}

// NewLoggerMailer constructs a logging mailer stub.
func NewLoggerMailer(logger *slog.Logger) *LoggerMailer {
	return &LoggerMailer{logger: logger}
}

// SendEmail writes the message to the structured logger.
func (m *LoggerMailer) SendEmail(_ context.Context, to, subject, body string) error {
	if m == nil || m.logger == nil {
		return nil
	}
	m.logger.Info("email", "to", to, "subject", subject, "body", body)
	return nil
}

// LoggerSMS is a stub implementation that writes SMS to the logger.
type LoggerSMS struct {
	logger *slog.Logger
}

// NewLoggerSMS constructs a logging SMS stub.
func NewLoggerSMS(logger *slog.Logger) *LoggerSMS {
	return &LoggerSMS{logger: logger}
}

// SendSMS writes the message to the structured logger.
func (s *LoggerSMS) SendSMS(_ context.Context, to, body string) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("sms", "to", to, "body", body)
	return nil
}
