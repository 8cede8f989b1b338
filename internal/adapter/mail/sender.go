// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/heartmarshall/insight-backend/internal/config"
)

// Sender delivers HTML mail through an SMTP relay. PLAIN auth is used when
// both user and password are configured.
type Sender struct {
	cfg  config.MailConfig
	auth smtp.Auth
}

// NewSender creates a Sender for cfg.
func NewSender(cfg config.MailConfig) *Sender {
	var auth smtp.Auth
	if cfg.User != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &Sender{cfg: cfg, auth: auth}
}

// Send delivers one message to a single recipient.
func (s *Sender) Send(ctx context.Context, to, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	to = sanitizeHeader(to)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mail.Send dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mail.Send handshake: %w", err)
	}
	defer func() { _ = c.Close() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("mail.Send starttls: %w", err)
		}
	}
	if s.auth != nil {
		if err := c.Auth(s.auth); err != nil {
			return fmt.Errorf("mail.Send auth: %w", err)
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("mail.Send mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("mail.Send rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mail.Send data: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg, to, subject, htmlBody)); err != nil {
		return fmt.Errorf("mail.Send write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail.Send close: %w", err)
	}
	return c.Quit()
}

func buildMessage(cfg config.MailConfig, to, subject, htmlBody string) []byte {
	from := cfg.From
	if strings.TrimSpace(cfg.FromName) != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}

	msg := []string{
		"From: " + sanitizeHeader(from),
		"To: " + sanitizeHeader(to),
		"Subject: " + sanitizeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}
	return []byte(strings.Join(msg, "\r\n"))
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "")
}

// LogSender writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{log: logger.With("adapter", "mail")}
}

// Send logs the recipient and subject.
func (s *LogSender) Send(ctx context.Context, to, subject, _ string) error {
	s.log.InfoContext(ctx, "mail not sent, no SMTP host configured",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
