package services

import (
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

func TestPromptPlaceholdersComeFromCatalog(t *testing.T) {
	tests := []struct {
		locale      i18n.Locale
		untitled    string
		unspecified string
	}{
		{i18n.Indonesian, "Tanpa judul", "Tidak disebutkan"},
		{i18n.English, "Untitled", "Not specified"},
	}
	for _, tt := range tests {
		tr := i18n.For(tt.locale)
		if got := tr.T("common.untitled"); got != tt.untitled {
			t.Errorf("%s common.untitled = %q, want %q", tt.locale, got, tt.untitled)
		}
		if got := tr.T("common.unspecified"); got != tt.unspecified {
			t.Errorf("%s common.unspecified = %q, want %q", tt.locale, got, tt.unspecified)
		}

		e := entryLocaleFor(tt.locale)
		w := weeklyLocaleFor(tt.locale)
		if e.untitled != tt.untitled || w.untitled != tt.untitled {
			t.Errorf("%s untitled = %q / %q, want %q", tt.locale, e.untitled, w.untitled, tt.untitled)
		}
		if e.unspecified != tt.unspecified || w.unspecified != tt.unspecified {
			t.Errorf("%s unspecified = %q / %q, want %q", tt.locale, e.unspecified, w.unspecified, tt.unspecified)
		}
	}
}

func TestRenderEntryBlocksUsesPlaceholders(t *testing.T) {
	entries := []models.JournalEntry{
		{Title: "  ", Content: "isi", CreatedAt: time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)},
	}
	got := renderEntryBlocks(entries, weeklyLocaleFor(i18n.English))
	for _, want := range []string{"Untitled", "Mood: Not specified"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderEntryBlocks() = %q, missing %q", got, want)
		}
	}
}
