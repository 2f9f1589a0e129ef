package service

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/vector-geodezja/contact-api/internal/config"
)

// PlainMailer is the fallback transport: a minimal unauthenticated
// plain-text submission for deployments without SMTP credentials, typically
// against a local relay.
type PlainMailer struct {
	cfg *config.Config
}

// NewPlainMailer creates the fallback transport
func NewPlainMailer(cfg *config.Config) *PlainMailer {
	return &PlainMailer{cfg: cfg}
}

func (m *PlainMailer) Send(ctx context.Context, msg *Message) error {
	headers := []string{
		fmt.Sprintf("From: %s", m.cfg.MailFrom),
		fmt.Sprintf("To: %s", m.cfg.MailTo),
		fmt.Sprintf("Reply-To: %s", sanitizeHeader(msg.Email)),
		fmt.Sprintf("Subject: %s", subject(msg)),
		"Content-Type: text/plain; charset=UTF-8",
	}

	raw := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + plainBody(msg))

	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	if err := smtp.SendMail(addr, nil, m.cfg.MailFrom, []string{m.cfg.MailTo}, raw); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}
