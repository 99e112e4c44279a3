package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

func TestJournalCreate(t *testing.T) {
	st := store.NewMemory()
	svc := NewJournalService(st)
	now := time.Date(2024, time.March, 12, 8, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	svc.now = fixedClock(now)
	ctx := context.Background()

	e, err := svc.Create(ctx, "user-1", NewEntry{Title: "  Pagi ", Content: "Sarapan bersama.", Mood: " tenang "}, i18n.Indonesian)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.Title != "Pagi" || e.Mood != "tenang" || e.UserID != "user-1" || e.ID == "" {
		t.Errorf("entry = %+v", e)
	}
	if !e.CreatedAt.Equal(now) || e.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", e.CreatedAt, now)
	}
	if _, err := st.GetEntry(ctx, "user-1", e.ID); err != nil {
		t.Errorf("entry not stored: %v", err)
	}
}

func TestJournalCreateValidation(t *testing.T) {
	svc := NewJournalService(store.NewMemory())
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewEntry
		want string
	}{
		{"blank content", NewEntry{Content: " \n "}, "Journal content can't be empty."},
		{"unknown mood", NewEntry{Content: "ok", Mood: "marah"}, "Unknown mood."},
		{"long title", NewEntry{Content: "ok", Title: strings.Repeat("t", 201)}, "Title must be at most 200 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-1", tt.in, i18n.English)
			if e := wantKind(t, err, KindInvalid); e.Message != tt.want {
				t.Errorf("message = %q, want %q", e.Message, tt.want)
			}
		})
	}

	_, err := svc.Create(ctx, "", NewEntry{Content: "ok"}, i18n.English)
	wantKind(t, err, KindUnauthorized)
}

func TestJournalList(t *testing.T) {
	st := store.NewMemory()
	svc := NewJournalService(st)
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedEntry(t, st, "user-1", "", "entry", "", base.Add(time.Duration(i)*time.Hour))
	}

	page, err := svc.List(ctx, "user-1", 2, 0, i18n.Indonesian)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Entries) != 2 || page.Total != 3 {
		t.Errorf("page = %d entries, total %d", len(page.Entries), page.Total)
	}
	if !page.Entries[0].CreatedAt.After(page.Entries[1].CreatedAt) {
		t.Error("entries should be newest first")
	}

	empty, err := svc.List(ctx, "user-2", 0, 0, i18n.Indonesian)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Entries == nil || len(empty.Entries) != 0 {
		t.Errorf("empty page = %#v, want non-nil empty slice", empty.Entries)
	}
}
