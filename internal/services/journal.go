package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
	"github.com/AnshRaj112/jurnal-backend/pkg/utils"
	"github.com/google/uuid"
)

// DefaultListLimit applies when a timeline request gives no limit.
const DefaultListLimit = 20

// MaxListLimit caps a single timeline page.
const MaxListLimit = 100

// NewEntry is the caller-supplied part of a journal entry.
type NewEntry struct {
	Title   string
	Content string
	Mood    string
}

// EntryPage is one page of the timeline.
type EntryPage struct {
	Entries []models.EntryWithSummary `json:"journals"`
	Total   int64                     `json:"total"`
}

// JournalService writes and lists entries.
type JournalService struct {
	store store.EntryStore
	now   func() time.Time
}

func NewJournalService(st store.EntryStore) *JournalService {
	return &JournalService{store: st, now: time.Now}
}

// invalid turns a validation failure into a localized KindInvalid error.
func invalid(t i18n.Translator, err error) *Error {
	var ve *utils.ValidationError
	if errors.As(err, &ve) {
		return newError(KindInvalid, "", t.T(ve.Code, ve.Params), err)
	}
	return newError(KindInvalid, "", t.T("request.invalidBody"), err)
}

// Create stores a new entry. Content is kept as written; title and mood are trimmed
// and the mood must be one of the six known values when present.
func (s *JournalService) Create(ctx context.Context, userID string, in NewEntry, locale i18n.Locale) (*models.JournalEntry, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	if err := utils.ValidateEntry(in.Title, in.Content); err != nil {
		return nil, invalid(t, err)
	}

	mood := strings.TrimSpace(in.Mood)
	if mood != "" {
		m, ok := models.ParseMood(mood)
		if !ok {
			return nil, newError(KindInvalid, "", t.T("journal.invalidMood"), nil)
		}
		mood = string(m)
	}

	entry := &models.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Mood:      mood,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to create entry", "error", err)
		return nil, newError(KindPersistence, OpSave, t.T("journal.createFailure"), err)
	}
	return entry, nil
}

// List returns a page of the user's entries, newest first, each with its summary.
func (s *JournalService) List(ctx context.Context, userID string, limit, skip int, locale i18n.Locale) (*EntryPage, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if skip < 0 {
		skip = 0
	}

	log := observability.LoggerFromContext(ctx)
	entries, err := s.store.ListEntries(ctx, userID, limit, skip)
	if err != nil {
		log.Error("failed to list entries", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("journal.listFailure"), err)
	}
	total, err := s.store.CountEntries(ctx, userID)
	if err != nil {
		log.Error("failed to count entries", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("journal.listFailure"), err)
	}
	if entries == nil {
		entries = []models.EntryWithSummary{}
	}
	return &EntryPage{Entries: entries, Total: total}, nil
}
