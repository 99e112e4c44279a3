package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
	MaxTitleLength    = 200
	MaxContentLength  = 20000
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidationError names the offending field. Code is a message catalog key and
// Params fills its placeholders.
type ValidationError struct {
	Field   string
	Code    string
	Message string
	Params  map[string]any
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername: 3-20 characters, letters, digits and underscores, not starting with "_".
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	invalid := &ValidationError{
		Field:   "username",
		Code:    "auth.usernameInvalid",
		Message: "Username must be 3-20 letters, numbers or underscores and start with a letter or number",
	}

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return invalid
	}
	if !usernameRegex.MatchString(username) {
		return invalid
	}
	if r := rune(username[0]); !unicode.IsLetter(r) && !unicode.IsNumber(r) {
		return invalid
	}
	return nil
}

// NormalizeUsername converts username to lowercase for storage
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Code:    "auth.passwordTooShort",
			Message: "Password must be at least 8 characters",
			Params:  map[string]any{"min": MinPasswordLength},
		}
	}
	return nil
}

// ValidateEntry checks a new journal entry. Content must be non-blank after trimming.
func ValidateEntry(title, content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Code: "journal.contentRequired", Message: "Content is required"}
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return &ValidationError{
			Field:   "content",
			Code:    "journal.contentTooLong",
			Message: "Content is too long",
			Params:  map[string]any{"max": MaxContentLength},
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Code:    "journal.titleTooLong",
			Message: "Title is too long",
			Params:  map[string]any{"max": MaxTitleLength},
		}
	}
	return nil
}
