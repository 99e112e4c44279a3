package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"dewi", "Dewi_88", "abc", "a2345678901234567890"[:20]}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q) error = %v", u, err)
		}
	}
	invalid := []string{"", "ab", "_dewi", "dewi!", "with space", strings.Repeat("a", 21)}
	for _, u := range invalid {
		err := ValidateUsername(u)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "username" {
			t.Errorf("ValidateUsername(%q) error = %v, want username ValidationError", u, err)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Dewi_88 "); got != "dewi_88" {
		t.Errorf("NormalizeUsername() = %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("1234567"); err == nil {
		t.Error("7-character password should be rejected")
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("8-character password error = %v", err)
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		code    string
	}{
		{"ok", "", "Hari ini menyenangkan", ""},
		{"blank content", "Judul", "   \n\t", "journal.contentRequired"},
		{"long title", strings.Repeat("t", MaxTitleLength+1), "x", "journal.titleTooLong"},
		{"long content", "", strings.Repeat("c", MaxContentLength+1), "journal.contentTooLong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.title, tt.content)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateEntry() error = %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Code != tt.code {
				t.Errorf("ValidateEntry() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
