package service

import (
	"context"
	"fmt"

	"github.com/vector-geodezja/contact-api/internal/config"

	"github.com/wneessen/go-mail"
)

// SMTPMailer is the primary transport: authenticated SMTP submission with an
// HTML body and a plain-text alternative.
type SMTPMailer struct {
	cfg *config.Config
}

// NewSMTPMailer creates the authenticated SMTP transport
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.cfg.MailFromName, m.cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := mm.AddToFormat(m.cfg.MailToName, m.cfg.MailTo); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	// Replies go straight to the submitter
	if err := mm.ReplyToFormat(msg.Name, msg.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}

	mm.Subject(subject(msg))
	mm.SetCharset(mail.CharsetUTF8)
	mm.SetBodyString(mail.TypeTextPlain, plainBody(msg))
	mm.AddAlternativeString(mail.TypeTextHTML, htmlBody(msg))

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
	}
	switch m.cfg.SMTPEncryption {
	case "ssl":
		opts = append(opts, mail.WithSSL())
	case "none":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
