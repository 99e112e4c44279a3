package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

const (
	pqUniqueViolation = "23505"
	dateLayout        = "2006-01-02"
)

// Postgres is the Store backed by the tables created in database.InitPostgresTables.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// validID filters out ids that would make Postgres reject the query outright.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (p *Postgres) CreateEntry(ctx context.Context, e *models.JournalEntry) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO journals (id, user_id, title, content, mood, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, nullString(e.Title), e.Content, nullString(e.Mood), e.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (p *Postgres) GetEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error) {
	if !validID(entryID) || !validID(userID) {
		return nil, ErrNotFound
	}

	var e models.JournalEntry
	var title, mood sql.NullString
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, mood, created_at
		FROM journals WHERE id = $1 AND user_id = $2
	`, entryID, userID).Scan(&e.ID, &e.UserID, &title, &e.Content, &mood, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Title, e.Mood = title.String, mood.String
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func (p *Postgres) ListEntries(ctx context.Context, userID string, limit, skip int) ([]models.EntryWithSummary, error) {
	if !validID(userID) {
		return []models.EntryWithSummary{}, nil
	}

	// LIMIT NULL is the same as no limit.
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}
	if skip < 0 {
		skip = 0
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT j.id, j.user_id, j.title, j.content, j.mood, j.created_at,
		       s.journal_id, s.summary, s.ai_suggestion, s.created_at
		FROM journals j
		LEFT JOIN journal_summaries s ON s.journal_id = j.id
		WHERE j.user_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, lim, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.EntryWithSummary{}
	for rows.Next() {
		var row models.EntryWithSummary
		var title, mood, summaryID, summary, suggestion sql.NullString
		var summaryAt sql.NullTime
		if err := rows.Scan(&row.ID, &row.UserID, &title, &row.Content, &mood, &row.CreatedAt,
			&summaryID, &summary, &suggestion, &summaryAt); err != nil {
			return nil, err
		}
		row.Title, row.Mood = title.String, mood.String
		row.CreatedAt = row.CreatedAt.UTC()
		if summaryID.Valid {
			row.Summary = &models.EntrySummary{
				EntryID:    summaryID.String,
				UserID:     row.UserID,
				Summary:    summary.String,
				Suggestion: suggestion.String,
				CreatedAt:  summaryAt.Time.UTC(),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (p *Postgres) CountEntries(ctx context.Context, userID string) (int64, error) {
	if !validID(userID) {
		return 0, nil
	}
	var n int64
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journals WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (p *Postgres) ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	if !validID(userID) {
		return nil, nil
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, mood, created_at
		FROM journals
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC
	`, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var title, mood sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &title, &e.Content, &mood, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Title, e.Mood = title.String, mood.String
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) ListEntryIDs(ctx context.Context, userID string) ([]string, error) {
	if !validID(userID) {
		return nil, nil
	}
	rows, err := p.db.QueryContext(ctx, `SELECT id FROM journals WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (p *Postgres) DeleteEntries(ctx context.Context, userID string) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM journals WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *Postgres) UpsertEntrySummary(ctx context.Context, s *models.EntrySummary) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO journal_summaries (journal_id, summary, ai_suggestion, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (journal_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			ai_suggestion = EXCLUDED.ai_suggestion,
			created_at = EXCLUDED.created_at
	`, s.EntryID, s.Summary, s.Suggestion, s.CreatedAt.UTC())
	return err
}

func (p *Postgres) DeleteEntrySummaries(ctx context.Context, entryIDs []string) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM journal_summaries WHERE journal_id = ANY($1::uuid[])`, pq.Array(entryIDs))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRecap(scan func(dest ...any) error) (*models.WeeklyRecap, error) {
	var r models.WeeklyRecap
	var start, end time.Time
	if err := scan(&r.ID, &r.UserID, &start, &end, &r.Summary, &r.Suggestion, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.WeekStart = start.Format(dateLayout)
	r.WeekEnd = end.Format(dateLayout)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (p *Postgres) GetWeeklyRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}
	row := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, week_start, week_end, summary, ai_suggestion, created_at
		FROM weekly_summaries
		WHERE user_id = $1 AND week_start = $2::date AND week_end = $3::date
	`, userID, weekStart, weekEnd)
	r, err := scanRecap(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return r, err
}

func (p *Postgres) InsertWeeklyRecap(ctx context.Context, r *models.WeeklyRecap) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		INSERT INTO weekly_summaries (id, user_id, week_start, week_end, summary, ai_suggestion, created_at)
		VALUES ($1, $2, $3::date, $4::date, $5, $6, $7)
		ON CONFLICT (user_id, week_start, week_end) DO NOTHING
	`, r.ID, r.UserID, r.WeekStart, r.WeekEnd, r.Summary, r.Suggestion, r.CreatedAt.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (p *Postgres) ListWeeklyRecaps(ctx context.Context, userID string, limit int) ([]models.WeeklyRecap, error) {
	if !validID(userID) {
		return []models.WeeklyRecap{}, nil
	}
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, week_start, week_end, summary, ai_suggestion, created_at
		FROM weekly_summaries
		WHERE user_id = $1
		ORDER BY week_start DESC
		LIMIT $2
	`, userID, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WeeklyRecap{}
	for rows.Next() {
		r, err := scanRecap(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteWeeklyRecaps(ctx context.Context, userID string) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM weekly_summaries WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *Postgres) UpsertProfile(ctx context.Context, pr *models.Profile) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO profiles (id, display_name, locale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			locale = EXCLUDED.locale,
			updated_at = EXCLUDED.updated_at
	`, pr.UserID, pr.DisplayName, pr.Locale, pr.UpdatedAt.UTC())
	return err
}

func (p *Postgres) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}
	var pr models.Profile
	err := p.db.QueryRowContext(ctx, `
		SELECT id, display_name, locale, created_at, updated_at FROM profiles WHERE id = $1
	`, userID).Scan(&pr.UserID, &pr.DisplayName, &pr.Locale, &pr.CreatedAt, &pr.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (p *Postgres) DeleteProfile(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, userID)
	return err
}

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)
	`, u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (p *Postgres) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, username, password_hash, created_at FROM users WHERE %s`, where), arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return p.getUser(ctx, "LOWER(username) = LOWER($1)", username)
}

func (p *Postgres) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}
	return p.getUser(ctx, "id = $1", userID)
}

func (p *Postgres) DeleteUser(ctx context.Context, userID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
