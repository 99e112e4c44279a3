// Package store persists entries, summaries, weekly recaps, profiles and users.
// Every read and write is scoped to one user id.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

var (
	// ErrNotFound is returned when a keyed lookup matches nothing for the given user.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("store: conflict")
)

// EntryStore reads and writes journal entries.
type EntryStore interface {
	CreateEntry(ctx context.Context, e *models.JournalEntry) error
	// GetEntry returns ErrNotFound when the entry is missing or owned by another user.
	GetEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error)
	// ListEntries returns entries newest first with their summaries. limit <= 0 means no limit.
	ListEntries(ctx context.Context, userID string, limit, skip int) ([]models.EntryWithSummary, error)
	CountEntries(ctx context.Context, userID string) (int64, error)
	// ListEntriesBetween returns entries created in [from, to), oldest first.
	ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error)
	ListEntryIDs(ctx context.Context, userID string) ([]string, error)
	DeleteEntries(ctx context.Context, userID string) (int64, error)
}

// SummaryStore holds the one-per-entry AI summaries.
type SummaryStore interface {
	// UpsertEntrySummary inserts or overwrites the summary keyed by EntryID.
	UpsertEntrySummary(ctx context.Context, s *models.EntrySummary) error
	DeleteEntrySummaries(ctx context.Context, entryIDs []string) (int64, error)
}

// RecapStore holds weekly recaps, unique per (user, week start, week end).
type RecapStore interface {
	GetWeeklyRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, error)
	// InsertWeeklyRecap writes r unless a recap for the same week already exists.
	// created is false when another writer got there first; r is left untouched in that case.
	InsertWeeklyRecap(ctx context.Context, r *models.WeeklyRecap) (created bool, err error)
	// ListWeeklyRecaps returns recaps newest week first. limit <= 0 means no limit.
	ListWeeklyRecaps(ctx context.Context, userID string, limit int) ([]models.WeeklyRecap, error)
	DeleteWeeklyRecaps(ctx context.Context, userID string) (int64, error)
}

// ProfileStore holds per-account preferences.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
}

// UserStore holds identity records.
type UserStore interface {
	// CreateUser returns ErrConflict when the username is taken.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Store is the full persistence surface used by the services.
type Store interface {
	EntryStore
	SummaryStore
	RecapStore
	ProfileStore
	UserStore
	Ping(ctx context.Context) error
}
