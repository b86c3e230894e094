package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"
)

// SMTPConfig holds settings for the SMTP mailer.
type SMTPConfig struct {
	Server     string
	Port       int
	Username   string
	Password   string
	SenderName string
	Timeout    time.Duration
}

// SMTPMailer sends mail over SMTP, upgrading the connection with STARTTLS.
type SMTPMailer struct {
	cfg  SMTPConfig
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer from the given settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server),
	}
}

// SendEmail delivers a plain-text message to the recipient. The context
// deadline, if any, caps the dial timeout.
func (m *SMTPMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	address := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)

	timeout := m.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", address, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Server)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Server}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := client.Auth(m.auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data writer: %w", err)
	}
	if _, err := w.Write(m.buildMessage(to, subject, body)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}

func (m *SMTPMailer) buildMessage(to, subject, body string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSender := mime.QEncoding.Encode("utf-8", m.cfg.SenderName)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		date, to, encodedSender, m.cfg.Username, encodedSubject, body,
	)
}
