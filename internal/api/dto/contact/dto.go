package contact

import "strings"

// SubmitRequest represents a contact form submission. The honeypot field is
// not part of the struct because its name is configurable; the handler reads
// it from the raw payload.
type SubmitRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Message        string `json:"message" validate:"required,min=10,max=4000"`
	Phone          string `json:"phone" validate:"omitempty,phone"`
	TurnstileToken string `json:"turnstile_token"`
}

// Normalize trims surrounding whitespace from all submitted fields. It must
// run before validation so the length rules apply to the trimmed values.
func (r *SubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
	r.Phone = strings.TrimSpace(r.Phone)
	r.TurnstileToken = strings.TrimSpace(r.TurnstileToken)
}
