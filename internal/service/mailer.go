package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/vector-geodezja/contact-api/internal/config"
)

// Message holds the validated fields of a submission ready for dispatch
type Message struct {
	Name       string
	Email      string
	Phone      string
	Body       string
	ClientIP   string
	ReceivedAt time.Time
}

// Mailer delivers a submission notification to the configured recipient.
// Implementations report failures as errors and never panic past their
// boundary.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// NewMailerFromConfig selects the mail transport once at startup: the
// authenticated SMTP transport when credentials are configured, the plain
// unauthenticated transport otherwise. The selection never changes per
// request.
func NewMailerFromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		return NewSMTPMailer(cfg)
	}
	return NewPlainMailer(cfg)
}

const sentAtFormat = "02.01.2006 15:04:05"

var headerSanitizer = strings.NewReplacer("\r", "", "\n", "")

// sanitizeHeader strips CR and LF so a field value cannot break out of the
// header line it is written into.
func sanitizeHeader(s string) string {
	return headerSanitizer.Replace(s)
}

func subject(msg *Message) string {
	return fmt.Sprintf("New contact form message - %s", sanitizeHeader(msg.Name))
}

// htmlBody renders the notification as HTML. Field values are escaped and
// newlines in the message become line breaks.
func htmlBody(msg *Message) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form message</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(msg.Email))
	if msg.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>\n", html.EscapeString(msg.Phone))
	}
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<div style='background: #f5f5f5; padding: 15px; border-radius: 5px;'>%s</div>\n",
		strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>"))
	b.WriteString("<hr>\n")
	fmt.Fprintf(&b, "<p><small>Sent: %s<br>IP: %s</small></p>\n",
		msg.ReceivedAt.Format(sentAtFormat), html.EscapeString(msg.ClientIP))
	return b.String()
}

// plainBody renders the notification as plain text. It doubles as the
// alternative part of the HTML message and as the whole body of the
// fallback transport.
func plainBody(msg *Message) string {
	var b strings.Builder
	b.WriteString("New contact form message\n\n")
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", msg.Phone)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n", msg.Body)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Sent: %s\n", msg.ReceivedAt.Format(sentAtFormat))
	fmt.Fprintf(&b, "IP: %s", msg.ClientIP)
	return b.String()
}
