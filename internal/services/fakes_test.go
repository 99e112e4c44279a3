package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
	"github.com/google/uuid"
)

// fakeGenerator replays a fixed reply and records every prompt it was given.
type fakeGenerator struct {
	mu         sync.Mutex
	configured bool
	reply      string
	err        error
	block      bool // wait for ctx to end instead of replying
	systems    []string
	users      []string
}

func newFakeGenerator(reply string) *fakeGenerator {
	return &fakeGenerator{configured: true, reply: reply}
}

func (g *fakeGenerator) Configured() bool { return g.configured }

func (g *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	g.mu.Lock()
	g.systems = append(g.systems, system)
	g.users = append(g.users, user)
	g.mu.Unlock()

	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.reply, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.users)
}

func (g *fakeGenerator) lastUser() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.users) == 0 {
		return ""
	}
	return g.users[len(g.users)-1]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedEntry(t *testing.T, st store.EntryStore, userID, title, content, mood string, at time.Time) models.JournalEntry {
	t.Helper()
	e := models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Mood:      mood,
		CreatedAt: at,
	}
	if err := st.CreateEntry(context.Background(), &e); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	return e
}

func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *services.Error of kind %s", err, kind)
	}
	if e.Kind != kind {
		t.Fatalf("error kind = %s, want %s (%v)", e.Kind, kind, err)
	}
	return e
}

// recordingStore wraps the in-memory store, logs the deletion calls and can
// fail individual operations.
type recordingStore struct {
	*store.Memory
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	// beforeInsert runs ahead of InsertWeeklyRecap, e.g. to simulate a concurrent writer.
	beforeInsert func(ctx context.Context, rec *models.WeeklyRecap)
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Memory: store.NewMemory(), fail: map[string]error{}}
}

func (r *recordingStore) record(op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	return r.fail[op]
}

func (r *recordingStore) ListEntryIDs(ctx context.Context, userID string) ([]string, error) {
	if err := r.record("ListEntryIDs"); err != nil {
		return nil, err
	}
	return r.Memory.ListEntryIDs(ctx, userID)
}

func (r *recordingStore) DeleteEntrySummaries(ctx context.Context, ids []string) (int64, error) {
	if err := r.record("DeleteEntrySummaries"); err != nil {
		return 0, err
	}
	return r.Memory.DeleteEntrySummaries(ctx, ids)
}

func (r *recordingStore) DeleteWeeklyRecaps(ctx context.Context, userID string) (int64, error) {
	if err := r.record("DeleteWeeklyRecaps"); err != nil {
		return 0, err
	}
	return r.Memory.DeleteWeeklyRecaps(ctx, userID)
}

func (r *recordingStore) DeleteEntries(ctx context.Context, userID string) (int64, error) {
	if err := r.record("DeleteEntries"); err != nil {
		return 0, err
	}
	return r.Memory.DeleteEntries(ctx, userID)
}

func (r *recordingStore) DeleteProfile(ctx context.Context, userID string) error {
	if err := r.record("DeleteProfile"); err != nil {
		return err
	}
	return r.Memory.DeleteProfile(ctx, userID)
}

func (r *recordingStore) DeleteUser(ctx context.Context, userID string) error {
	if err := r.record("DeleteUser"); err != nil {
		return err
	}
	return r.Memory.DeleteUser(ctx, userID)
}

func (r *recordingStore) GetWeeklyRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, error) {
	if err := r.record("GetWeeklyRecap"); err != nil {
		return nil, err
	}
	return r.Memory.GetWeeklyRecap(ctx, userID, weekStart, weekEnd)
}

func (r *recordingStore) ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	if err := r.record("ListEntriesBetween"); err != nil {
		return nil, err
	}
	return r.Memory.ListEntriesBetween(ctx, userID, from, to)
}

func (r *recordingStore) InsertWeeklyRecap(ctx context.Context, rec *models.WeeklyRecap) (bool, error) {
	if err := r.record("InsertWeeklyRecap"); err != nil {
		return false, err
	}
	if r.beforeInsert != nil {
		r.beforeInsert(ctx, rec)
	}
	return r.Memory.InsertWeeklyRecap(ctx, rec)
}

func (r *recordingStore) UpsertEntrySummary(ctx context.Context, s *models.EntrySummary) error {
	if err := r.record("UpsertEntrySummary"); err != nil {
		return err
	}
	return r.Memory.UpsertEntrySummary(ctx, s)
}

func (r *recordingStore) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingStore) count(op string) int {
	n := 0
	for _, c := range r.ops() {
		if c == op {
			n++
		}
	}
	return n
}

// memoryCache is an in-process RecapCache.
type memoryCache struct {
	mu      sync.Mutex
	recaps  map[string]models.WeeklyRecap
	readErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{recaps: map[string]models.WeeklyRecap{}}
}

func (c *memoryCache) GetRecap(_ context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	r, ok := c.recaps[userID+weekStart+weekEnd]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (c *memoryCache) SetRecap(_ context.Context, r *models.WeeklyRecap) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recaps[r.UserID+r.WeekStart+r.WeekEnd] = *r
	return nil
}

func (c *memoryCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, r := range c.recaps {
		if r.UserID == userID {
			delete(c.recaps, k)
		}
	}
	return nil
}
