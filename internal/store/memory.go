package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

// Memory is an in-process Store for tests and local development. Nothing survives a restart.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]models.JournalEntry
	order     []string
	summaries map[string]models.EntrySummary
	recaps    map[string]models.WeeklyRecap
	profiles  map[string]models.Profile
	users     map[string]models.User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries:   make(map[string]models.JournalEntry),
		summaries: make(map[string]models.EntrySummary),
		recaps:    make(map[string]models.WeeklyRecap),
		profiles:  make(map[string]models.Profile),
		users:     make(map[string]models.User),
	}
}

func recapKey(userID, weekStart, weekEnd string) string {
	return userID + "|" + weekStart + "|" + weekEnd
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) CreateEntry(_ context.Context, e *models.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; ok {
		return ErrConflict
	}
	m.entries[e.ID] = *e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *Memory) GetEntry(_ context.Context, userID, entryID string) (*models.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return &e, nil
}

// userEntries returns the user's entries in insertion order. Caller holds the lock.
func (m *Memory) userEntries(userID string) []models.JournalEntry {
	var out []models.JournalEntry
	for _, id := range m.order {
		if e, ok := m.entries[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (m *Memory) ListEntries(_ context.Context, userID string, limit, skip int) ([]models.EntryWithSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.userEntries(userID)
	slices.SortStableFunc(entries, func(a, b models.JournalEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if skip > 0 {
		if skip >= len(entries) {
			entries = nil
		} else {
			entries = entries[skip:]
		}
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	out := make([]models.EntryWithSummary, 0, len(entries))
	for _, e := range entries {
		row := models.EntryWithSummary{JournalEntry: e}
		if s, ok := m.summaries[e.ID]; ok {
			row.Summary = &s
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *Memory) CountEntries(_ context.Context, userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.userEntries(userID))), nil
}

func (m *Memory) ListEntriesBetween(_ context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.JournalEntry
	for _, e := range m.userEntries(userID) {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.JournalEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (m *Memory) ListEntryIDs(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for _, e := range m.userEntries(userID) {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (m *Memory) DeleteEntries(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	kept := m.order[:0]
	for _, id := range m.order {
		if e, ok := m.entries[id]; ok && e.UserID == userID {
			delete(m.entries, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return n, nil
}

func (m *Memory) UpsertEntrySummary(_ context.Context, s *models.EntrySummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[s.EntryID]; !ok {
		return ErrNotFound
	}
	m.summaries[s.EntryID] = *s
	return nil
}

func (m *Memory) DeleteEntrySummaries(_ context.Context, entryIDs []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range entryIDs {
		if _, ok := m.summaries[id]; ok {
			delete(m.summaries, id)
			n++
		}
	}
	return n, nil
}

// EntrySummary returns the stored summary for an entry, for test assertions.
func (m *Memory) EntrySummary(entryID string) (models.EntrySummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.summaries[entryID]
	return s, ok
}

func (m *Memory) GetWeeklyRecap(_ context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recaps[recapKey(userID, weekStart, weekEnd)]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) InsertWeeklyRecap(_ context.Context, r *models.WeeklyRecap) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := recapKey(r.UserID, r.WeekStart, r.WeekEnd)
	if _, ok := m.recaps[key]; ok {
		return false, nil
	}
	m.recaps[key] = *r
	return true, nil
}

func (m *Memory) ListWeeklyRecaps(_ context.Context, userID string, limit int) ([]models.WeeklyRecap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.WeeklyRecap
	for _, r := range m.recaps {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.WeeklyRecap) int {
		return strings.Compare(b.WeekStart, a.WeekStart)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) DeleteWeeklyRecaps(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, r := range m.recaps {
		if r.UserID == userID {
			delete(m.recaps, k)
			n++
		}
	}
	return n, nil
}

func (m *Memory) UpsertProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.profiles[p.UserID]; ok && p.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	m.profiles[p.UserID] = *p
	return nil
}

func (m *Memory) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) DeleteProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, userID)
	return nil
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrConflict
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) DeleteUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return ErrNotFound
	}
	delete(m.users, userID)
	return nil
}
