package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

var entryTime = time.Date(2024, time.March, 12, 8, 30, 0, 0, time.UTC)

func newSummaryFixture(t *testing.T, reply string) (*SummaryService, *recordingStore, *fakeGenerator, string) {
	t.Helper()
	st := newRecordingStore()
	gen := newFakeGenerator(reply)
	svc := NewSummaryService(st, gen, time.Second)
	svc.now = fixedClock(entryTime.Add(time.Hour))
	e := seedEntry(t, st, "user-1", "", "Hari ini aku lelah tapi senang.", "", entryTime)
	return svc, st, gen, e.ID
}

func TestSummarizeEntryParsesJSON(t *testing.T) {
	svc, st, gen, id := newSummaryFixture(t, "```json\n{\"summary\":\"Hari yang campur aduk.\",\"suggestion\":\"Tidur lebih awal.\"}\n```")

	got, err := svc.SummarizeEntry(context.Background(), "user-1", id, i18n.Indonesian)
	if err != nil {
		t.Fatalf("SummarizeEntry() error = %v", err)
	}
	if got.Summary != "Hari yang campur aduk." || got.Suggestion != "Tidur lebih awal." {
		t.Errorf("summary = %+v", got)
	}

	stored, ok := st.EntrySummary(id)
	if !ok || stored.Summary != got.Summary {
		t.Errorf("stored summary = %+v, %v", stored, ok)
	}

	prompt := gen.lastUser()
	for _, want := range []string{"Judul jurnal: Tanpa judul", "Mood (opsional): Tidak disebutkan", "2024-03-12T08:30:00.000Z", "Hari ini aku lelah"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSummarizeEntryFallsBackToPlainText(t *testing.T) {
	svc, _, _, id := newSummaryFixture(t, "  You seem tired but content.  ")

	got, err := svc.SummarizeEntry(context.Background(), "user-1", id, i18n.English)
	if err != nil {
		t.Fatalf("SummarizeEntry() error = %v", err)
	}
	if got.Summary != "You seem tired but content." || got.Suggestion != "" {
		t.Errorf("summary = %+v", got)
	}
}

func TestSummarizeEntryEnglishPrompt(t *testing.T) {
	svc, _, gen, id := newSummaryFixture(t, `{"summary":"s","suggestion":"x"}`)
	if _, err := svc.SummarizeEntry(context.Background(), "user-1", id, i18n.English); err != nil {
		t.Fatalf("SummarizeEntry() error = %v", err)
	}
	if !strings.Contains(gen.lastUser(), "Journal title: Untitled") {
		t.Errorf("prompt = %q", gen.lastUser())
	}
	if !strings.Contains(gen.systems[0], "English") {
		t.Errorf("system = %q", gen.systems[0])
	}
}

func TestSummarizeEntryOverwrites(t *testing.T) {
	svc, st, gen, id := newSummaryFixture(t, `{"summary":"first","suggestion":"a"}`)
	ctx := context.Background()

	if _, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.Indonesian); err != nil {
		t.Fatal(err)
	}
	gen.reply = `{"summary":"second","suggestion":"b"}`
	if _, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.Indonesian); err != nil {
		t.Fatal(err)
	}

	stored, _ := st.EntrySummary(id)
	if stored.Summary != "second" || stored.Suggestion != "b" {
		t.Errorf("stored = %+v, want the second summary", stored)
	}
}

func TestSummarizeEntryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, gen, id := newSummaryFixture(t, "{}")
		_, err := svc.SummarizeEntry(ctx, "", id, i18n.Indonesian)
		wantKind(t, err, KindUnauthorized)
		if gen.calls() != 0 {
			t.Error("generator must not be called")
		}
	})

	t.Run("other user's entry", func(t *testing.T) {
		svc, _, _, id := newSummaryFixture(t, "{}")
		_, err := svc.SummarizeEntry(ctx, "user-2", id, i18n.Indonesian)
		e := wantKind(t, err, KindNotFound)
		if e.Message != "Jurnal tidak ditemukan" {
			t.Errorf("message = %q", e.Message)
		}
	})

	t.Run("missing entry is checked before configuration", func(t *testing.T) {
		svc, _, gen, _ := newSummaryFixture(t, "{}")
		gen.configured = false
		_, err := svc.SummarizeEntry(ctx, "user-1", "missing", i18n.English)
		wantKind(t, err, KindNotFound)
	})

	t.Run("fetch failure", func(t *testing.T) {
		svc, _, _, id := newSummaryFixture(t, "{}")
		svc.store = failingGet{svc.store}
		_, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.English)
		if e := wantKind(t, err, KindPersistence); e.Op != OpFetch {
			t.Errorf("op = %q, want %q", e.Op, OpFetch)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		svc, _, gen, id := newSummaryFixture(t, "{}")
		gen.configured = false
		_, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.English)
		e := wantKind(t, err, KindConfiguration)
		if !strings.Contains(e.Message, "OPENAI_API_KEY") {
			t.Errorf("message = %q", e.Message)
		}
		if gen.calls() != 0 {
			t.Error("generator must not be called")
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		svc, st, gen, id := newSummaryFixture(t, "")
		gen.err = errors.New("upstream 500")
		_, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.Indonesian)
		wantKind(t, err, KindSummarization)
		if _, ok := st.EntrySummary(id); ok {
			t.Error("nothing should be stored")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		svc, _, gen, id := newSummaryFixture(t, "")
		gen.block = true
		svc.timeout = 10 * time.Millisecond
		_, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.Indonesian)
		wantKind(t, err, KindSummarization)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want deadline exceeded in chain", err)
		}
	})

	t.Run("save failure", func(t *testing.T) {
		svc, st, _, id := newSummaryFixture(t, `{"summary":"s","suggestion":"x"}`)
		st.fail["UpsertEntrySummary"] = errors.New("disk full")
		_, err := svc.SummarizeEntry(ctx, "user-1", id, i18n.English)
		if e := wantKind(t, err, KindPersistence); e.Op != OpSave || e.Message != "Failed to save summary." {
			t.Errorf("error = %+v", e)
		}
	})
}

// failingGet fails every entry lookup with a non-NotFound error.
type failingGet struct{ summaryStore }

func (failingGet) GetEntry(context.Context, string, string) (*models.JournalEntry, error) {
	return nil, errors.New("connection reset")
}
