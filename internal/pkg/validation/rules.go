package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// PhonePattern accepts E.164 numbers and local numbers with a leading 0
	PhonePattern = `^(\+[1-9]\d{7,14}|0\d{8,10})$`

	// CodePattern is a 6-digit verification code
	CodePattern = `^\d{6}$`

	// UsernamePattern allows letters, digits, dot, dash and underscore
	UsernamePattern = `^[A-Za-z0-9._-]{3,50}$`

	// PasswordMinLength is the minimum password length
	PasswordMinLength = 8

	// NameMaxLength bounds free-text names
	NameMaxLength = 150
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone    *regexp.Regexp
	Code     *regexp.Regexp
	Username *regexp.Regexp
}{
	Phone:    regexp.MustCompile(PhonePattern),
	Code:     regexp.MustCompile(CodePattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// FieldErrors collects per-field validation messages
type FieldErrors map[string]string

// Add records a message for field if none is recorded yet
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Required records an error when value is blank
func (f FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.Add(field, field+" is required")
	}
}

// MaxLength records an error when value is longer than max runes
func (f FieldErrors) MaxLength(field, value string, max int) {
	if len([]rune(value)) > max {
		f.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

// Empty reports whether no error was recorded
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Summary joins the messages in a stable order for the error message
func (f FieldErrors) Summary(order ...string) string {
	var parts []string
	seen := map[string]bool{}
	for _, field := range order {
		if msg, ok := f[field]; ok {
			parts = append(parts, msg)
			seen[field] = true
		}
	}
	for field, msg := range f {
		if !seen[field] {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when no error was recorded, otherwise a validation error carrying
// the messages as details
func (f FieldErrors) Err(order ...string) error {
	if f.Empty() {
		return nil
	}
	details := make(map[string]interface{}, len(f))
	for field, msg := range f {
		details[field] = msg
	}
	return apperrors.NewCustomError(apperrors.ErrValidation, f.Summary(order...)).WithDetails(details)
}

// ValidatePassword checks length and requires at least one letter and one digit
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}

	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}

	return nil
}

// NormalizePhone strips spaces, dashes and dots from a phone number
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}
