package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

type weeklyStore interface {
	store.EntryStore
	store.RecapStore
}

// WeeklyResult has the same shape whether the recap was generated now or read back.
type WeeklyResult struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
	WeekStart  string `json:"weekStart"`
	WeekEnd    string `json:"weekEnd"`
	FromCache  bool   `json:"fromCache"`
}

func resultFrom(r *models.WeeklyRecap, fromCache bool) *WeeklyResult {
	return &WeeklyResult{
		Summary:    r.Summary,
		Suggestion: r.Suggestion,
		WeekStart:  r.WeekStart,
		WeekEnd:    r.WeekEnd,
		FromCache:  fromCache,
	}
}

// WeeklyService generates at most one recap per user per calendar week.
type WeeklyService struct {
	store    weeklyStore
	ai       TextGenerator
	cache    RecapCache
	timeout  time.Duration
	location *time.Location
	now      func() time.Time
}

// NewWeeklyService wires the workflow. cache may be nil; loc nil means UTC.
func NewWeeklyService(st weeklyStore, gen TextGenerator, cache RecapCache, timeout time.Duration, loc *time.Location) *WeeklyService {
	if loc == nil {
		loc = time.UTC
	}
	return &WeeklyService{
		store:    st,
		ai:       gen,
		cache:    cache,
		timeout:  timeout,
		location: loc,
		now:      time.Now,
	}
}

// CurrentWeek is the window Generate would use right now.
func (s *WeeklyService) CurrentWeek() WeekWindow {
	return WeekOf(s.now(), s.location)
}

// Generate returns this week's recap for the user, creating it on first request.
//
// A stored recap is returned as-is with FromCache set and the model is not called.
// Otherwise the week's entries are rendered oldest first into one document and
// summarised. Unlike SummarizeEntry there is no raw-text fallback: output that is
// not a JSON object fails the call. If two requests race, the first insert wins
// and the other returns the winner's row as a cached result.
func (s *WeeklyService) Generate(ctx context.Context, userID string, locale i18n.Locale) (*WeeklyResult, error) {
	loc := weeklyLocaleFor(locale)
	log := observability.LoggerFromContext(ctx)

	if userID == "" {
		return nil, newError(KindUnauthorized, "", loc.messages.unauthorized, nil)
	}
	if !generatorReady(s.ai) {
		return nil, newError(KindConfiguration, "", loc.messages.configuration, nil)
	}

	window := s.CurrentWeek()
	weekStart, weekEnd := window.StartDate(), window.EndDate()
	log = log.With("week_start", weekStart, "week_end", weekEnd)

	if cached := s.cachedRecap(ctx, userID, weekStart, weekEnd); cached != nil {
		return resultFrom(cached, true), nil
	}

	existing, err := s.store.GetWeeklyRecap(ctx, userID, weekStart, weekEnd)
	switch {
	case err == nil:
		s.remember(ctx, existing)
		return resultFrom(existing, true), nil
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to check weekly recap", "error", err)
		return nil, newError(KindPersistence, OpCheck, loc.messages.checkFailure, err)
	}

	entries, err := s.store.ListEntriesBetween(ctx, userID, window.Start, window.EndExclusive)
	if err != nil {
		log.Error("failed to fetch week entries", "error", err)
		return nil, newError(KindPersistence, OpFetch, loc.messages.fetchFailure, err)
	}
	if len(entries) == 0 {
		return nil, newError(KindNoEntries, "", loc.messages.noEntries, nil)
	}

	document := loc.user(formatInstant(window.Start), formatInstant(window.LastInstant()), renderEntryBlocks(entries, loc))
	raw, err := generate(ctx, s.ai, s.timeout, loc.system, document)
	if err != nil {
		log.Error("failed to generate weekly recap", "error", err)
		return nil, newError(KindSummarization, "", loc.messages.summaryFailure, err)
	}

	parsed, err := ParseSummary(raw)
	if err != nil {
		log.Error("failed to parse weekly recap", "error", err)
		return nil, newError(KindSummarization, "", loc.messages.summaryFailure, err)
	}

	recap := &models.WeeklyRecap{
		ID:         uuid.NewString(),
		UserID:     userID,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		Summary:    parsed.Summary,
		Suggestion: parsed.Suggestion,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.store.InsertWeeklyRecap(ctx, recap)
	if err != nil {
		log.Error("failed to save weekly recap", "error", err)
		return nil, newError(KindPersistence, OpSave, loc.messages.saveFailure, err)
	}
	if !created {
		winner, err := s.store.GetWeeklyRecap(ctx, userID, weekStart, weekEnd)
		if err != nil {
			log.Error("failed to read concurrent weekly recap", "error", err)
			return nil, newError(KindPersistence, OpSave, loc.messages.saveFailure, err)
		}
		log.Info("weekly recap already created by a concurrent request")
		s.remember(ctx, winner)
		return resultFrom(winner, true), nil
	}

	s.remember(ctx, recap)
	log.Info("weekly recap generated", "entries", len(entries), "locale", locale.String())
	return resultFrom(recap, false), nil
}

// List returns the user's recaps, newest week first.
func (s *WeeklyService) List(ctx context.Context, userID string, limit int, locale i18n.Locale) ([]models.WeeklyRecap, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}
	recaps, err := s.store.ListWeeklyRecaps(ctx, userID, limit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list weekly recaps", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("weekly.listFailure"), err)
	}
	return recaps, nil
}

func (s *WeeklyService) cachedRecap(ctx context.Context, userID, weekStart, weekEnd string) *models.WeeklyRecap {
	if s.cache == nil {
		return nil
	}
	r, ok, err := s.cache.GetRecap(ctx, userID, weekStart, weekEnd)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("recap cache read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return r
}

func (s *WeeklyService) remember(ctx context.Context, r *models.WeeklyRecap) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetRecap(ctx, r); err != nil {
		observability.LoggerFromContext(ctx).Warn("recap cache write failed", "error", err)
	}
}
