package services

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

type summaryStore interface {
	store.EntryStore
	store.SummaryStore
}

// SummaryService produces and stores the AI summary of a single entry.
type SummaryService struct {
	store   summaryStore
	ai      TextGenerator
	timeout time.Duration
	now     func() time.Time
}

func NewSummaryService(st summaryStore, gen TextGenerator, timeout time.Duration) *SummaryService {
	return &SummaryService{
		store:   st,
		ai:      gen,
		timeout: timeout,
		now:     time.Now,
	}
}

// SummarizeEntry summarises one of the user's entries and upserts the result,
// replacing any earlier summary for that entry.
//
// Model output that is not a JSON object is kept as the summary text with an
// empty suggestion; only a failed model call or a failed write is an error.
func (s *SummaryService) SummarizeEntry(ctx context.Context, userID, entryID string, locale i18n.Locale) (*models.EntrySummary, error) {
	loc := entryLocaleFor(locale)
	log := observability.LoggerFromContext(ctx).With("entry_id", entryID)

	if userID == "" {
		return nil, newError(KindUnauthorized, "", loc.messages.unauthorized, nil)
	}

	entry, err := s.store.GetEntry(ctx, userID, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, "", loc.messages.notFound, err)
	}
	if err != nil {
		log.Error("failed to load entry", "error", err)
		return nil, newError(KindPersistence, OpFetch, loc.messages.fetchFailure, err)
	}

	if !generatorReady(s.ai) {
		return nil, newError(KindConfiguration, "", loc.messages.configuration, nil)
	}

	prompt := loc.user(entryPromptData{
		Title:     orPlaceholder(entry.Title, loc.untitled),
		Mood:      orPlaceholder(entry.Mood, loc.unspecified),
		CreatedAt: formatInstant(entry.CreatedAt),
		Content:   entry.Content,
	})

	raw, err := generate(ctx, s.ai, s.timeout, loc.system, prompt)
	if err != nil {
		log.Error("failed to generate entry summary", "error", err)
		return nil, newError(KindSummarization, "", loc.messages.summaryFailure, err)
	}

	result := ParseSummaryLenient(raw)
	summary := &models.EntrySummary{
		EntryID:    entry.ID,
		UserID:     userID,
		Summary:    result.Summary,
		Suggestion: result.Suggestion,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.store.UpsertEntrySummary(ctx, summary); err != nil {
		log.Error("failed to save entry summary", "error", err)
		return nil, newError(KindPersistence, OpSave, loc.messages.saveFailure, err)
	}

	log.Info("entry summarized", "locale", locale.String())
	return summary, nil
}
