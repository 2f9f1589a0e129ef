package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^[0-9 +()-]{6,}$`)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("phone", validatePhone)
}

// validatePhone checks if the phone number is valid. Digits, spaces, '+',
// '-' and parentheses are allowed, minimum 6 characters.
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// fieldMessages maps struct fields to the client-facing rule descriptions
var fieldMessages = map[string]string{
	"Name":    "Name is required (min. 2 characters)",
	"Email":   "Invalid email address",
	"Message": "Message is required (min. 10 characters)",
	"Phone":   "Invalid phone number format",
}

// maxMessages overrides fieldMessages when the length cap is exceeded, so an
// over-long value is not reported as missing.
var maxMessages = map[string]string{
	"Name":    "Name is too long (max. 100 characters)",
	"Email":   "Email address is too long (max. 255 characters)",
	"Message": "Message is too long (max. 4000 characters)",
}

// FormatValidationError collects every violated rule into human-readable
// messages. All failures are reported, not just the first.
func FormatValidationError(err error) []string {
	var messages []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			if e.Tag() == "max" {
				if msg, ok := maxMessages[e.Field()]; ok {
					messages = append(messages, msg)
					continue
				}
			}
			if msg, ok := fieldMessages[e.Field()]; ok {
				messages = append(messages, msg)
			} else {
				messages = append(messages, "Invalid value for "+strings.ToLower(e.Field()))
			}
		}
	}
	return messages
}
