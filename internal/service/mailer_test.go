package service

import (
	"strings"
	"testing"
	"time"

	"github.com/vector-geodezja/contact-api/internal/config"
)

func testMessage() *Message {
	return &Message{
		Name:       "Jan Kowalski",
		Email:      "jan@example.com",
		Phone:      "+48 600 100 200",
		Body:       "First line\nSecond line <b>bold</b>",
		ClientIP:   "203.0.113.7",
		ReceivedAt: time.Date(2026, 9, 1, 12, 30, 45, 0, time.UTC),
	}
}

func TestNewMailerFromConfig(t *testing.T) {
	withCreds := &config.Config{SMTPUsername: "user@example.com", SMTPPassword: "secret"}
	if _, ok := NewMailerFromConfig(withCreds).(*SMTPMailer); !ok {
		t.Error("expected SMTP transport when credentials are configured")
	}

	withoutCreds := &config.Config{}
	if _, ok := NewMailerFromConfig(withoutCreds).(*PlainMailer); !ok {
		t.Error("expected plain fallback transport without credentials")
	}

	partialCreds := &config.Config{SMTPUsername: "user@example.com"}
	if _, ok := NewMailerFromConfig(partialCreds).(*PlainMailer); !ok {
		t.Error("expected plain fallback transport with incomplete credentials")
	}
}

func TestSubject(t *testing.T) {
	got := subject(testMessage())
	want := "New contact form message - Jan Kowalski"
	if got != want {
		t.Errorf("subject = %q, want %q", got, want)
	}
}

func TestSubjectStripsCRLF(t *testing.T) {
	msg := testMessage()
	msg.Name = "Jan\r\nBcc: victim@evil.example"

	got := subject(msg)
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("subject contains line breaks: %q", got)
	}
	want := "New contact form message - JanBcc: victim@evil.example"
	if got != want {
		t.Errorf("subject = %q, want %q", got, want)
	}
}

func TestSanitizeHeader(t *testing.T) {
	if got := sanitizeHeader("a@b.example\r\nX-Spoof: x"); got != "a@b.exampleX-Spoof: x" {
		t.Errorf("sanitizeHeader = %q", got)
	}
}

func TestHTMLBody(t *testing.T) {
	body := htmlBody(testMessage())

	for _, want := range []string{
		"Jan Kowalski",
		"jan@example.com",
		"+48 600 100 200",
		"First line<br>Second line",
		"203.0.113.7",
		"01.09.2026 12:30:45",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("html body missing %q:\n%s", want, body)
		}
	}

	// Markup in the submission must be escaped
	if strings.Contains(body, "<b>bold</b>") {
		t.Error("html body contains unescaped markup")
	}
	if !strings.Contains(body, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("html body missing escaped markup")
	}
}

func TestHTMLBodyOmitsEmptyPhone(t *testing.T) {
	msg := testMessage()
	msg.Phone = ""
	if strings.Contains(htmlBody(msg), "Phone") {
		t.Error("html body should omit the phone row when empty")
	}
	if strings.Contains(plainBody(msg), "Phone") {
		t.Error("plain body should omit the phone row when empty")
	}
}

func TestPlainBody(t *testing.T) {
	body := plainBody(testMessage())

	for _, want := range []string{
		"Name: Jan Kowalski",
		"Email: jan@example.com",
		"Phone: +48 600 100 200",
		"First line\nSecond line <b>bold</b>",
		"Sent: 01.09.2026 12:30:45",
		"IP: 203.0.113.7",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("plain body missing %q:\n%s", want, body)
		}
	}
}
