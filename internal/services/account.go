package services

import (
	"context"
	"errors"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

// DeletionReport counts what an account deletion removed.
type DeletionReport struct {
	EntrySummaries int64 `json:"entry_summaries"`
	WeeklyRecaps   int64 `json:"weekly_recaps"`
	Entries        int64 `json:"entries"`
}

// AccountService removes an account and everything it owns.
type AccountService struct {
	store    store.Store
	sessions SessionStore
	cache    RecapCache
}

// NewAccountService wires deletion. sessions and cache may be nil.
func NewAccountService(st store.Store, sessions SessionStore, cache RecapCache) *AccountService {
	return &AccountService{store: st, sessions: sessions, cache: cache}
}

// Delete removes, in order: the summaries of the user's entries, weekly recaps,
// entries, the profile and finally the identity record. Any storage failure stops
// the sequence so nothing is left pointing at a missing parent.
func (s *AccountService) Delete(ctx context.Context, userID string, locale i18n.Locale) (*DeletionReport, error) {
	t := i18n.For(locale)
	log := observability.LoggerFromContext(ctx)

	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}
	fail := func(step string, err error) error {
		log.Error("failed to delete account", "step", step, "error", err)
		return newError(KindPersistence, OpDelete, t.T("account.deleteFailure"), err)
	}

	report := &DeletionReport{}

	entryIDs, err := s.store.ListEntryIDs(ctx, userID)
	if err != nil {
		return nil, fail("list_entries", err)
	}
	if len(entryIDs) > 0 {
		if report.EntrySummaries, err = s.store.DeleteEntrySummaries(ctx, entryIDs); err != nil {
			return nil, fail("entry_summaries", err)
		}
	}
	if report.WeeklyRecaps, err = s.store.DeleteWeeklyRecaps(ctx, userID); err != nil {
		return nil, fail("weekly_recaps", err)
	}
	if report.Entries, err = s.store.DeleteEntries(ctx, userID); err != nil {
		return nil, fail("entries", err)
	}
	if err := s.store.DeleteProfile(ctx, userID); err != nil {
		return nil, fail("profile", err)
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fail("user", err)
	}

	// The data is gone; stale sessions or cache rows only cost a failed lookup later.
	if s.sessions != nil {
		if err := s.sessions.InvalidateUser(ctx, userID); err != nil {
			log.Warn("failed to invalidate sessions after account deletion", "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			log.Warn("failed to invalidate recap cache after account deletion", "error", err)
		}
	}

	log.Info("account deleted",
		"entries", report.Entries,
		"entry_summaries", report.EntrySummaries,
		"weekly_recaps", report.WeeklyRecaps,
	)
	return report, nil
}
