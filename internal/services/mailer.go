package services

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bensefia-clinic/clinic-api/internal/config"
)

// Email is one outbound message. Calendar, when set, is attached as a
// text/calendar part.
type Email struct {
	To       string
	Subject  string
	Text     string
	HTML     string
	Calendar string
}

// Mailer sends a single email, best-effort. Sandboxed implementations return
// a preview URL for the captured message; real transports return "".
type Mailer interface {
	Send(email Email) (previewURL string, err error)
}

// buildMessage assembles a multipart MIME message by hand.
func buildMessage(from string, email Email) []byte {
	boundary := "----=_CLINIC_MAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", email.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))

	part := func(contentType, body string) {
		sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		sb.WriteString(fmt.Sprintf("Content-Type: %s\r\n\r\n", contentType))
		sb.WriteString(body + "\r\n")
	}

	if email.Text != "" {
		part("text/plain; charset=utf-8", email.Text)
	}
	if email.HTML != "" {
		part("text/html; charset=utf-8", email.HTML)
	}
	if email.Calendar != "" {
		part("text/calendar; charset=utf-8; method=REQUEST", email.Calendar)
	}

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// SMTPMailer delivers through a configured SMTP relay.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	from string
}

func NewSMTPMailer(cfg config.SMTPConfig, from string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, from: from}
}

func (m *SMTPMailer) Send(email Email) (string, error) {
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	msg := buildMessage(m.from, email)
	if err := smtp.SendMail(addr, auth, m.from, []string{email.To}, msg); err != nil {
		return "", fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return "", nil
}

// OutboxMailer is the sandbox transport used when no SMTP relay is
// configured: every message is written as an .eml file under a local
// directory and the file path comes back as the preview URL.
type OutboxMailer struct {
	dir  string
	from string
}

func NewOutboxMailer(dir, from string) *OutboxMailer {
	return &OutboxMailer{dir: dir, from: from}
}

func (m *OutboxMailer) Send(email Email) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create outbox dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s.eml", time.Now().UnixNano(), sanitizeAddr(email.To))
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, buildMessage(m.from, email), 0o600); err != nil {
		return "", fmt.Errorf("write outbox message: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + abs, nil
}

func sanitizeAddr(addr string) string {
	r := strings.NewReplacer("@", "_at_", "/", "_", "\\", "_")
	return r.Replace(addr)
}
