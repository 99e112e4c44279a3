package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the pool and checks it. The schema is left to InitPostgresTables.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")
	return db, nil
}

// InitPostgresTables creates all tables and indexes if they don't exist.
// Foreign keys from entries, recaps and profiles to users have no cascade, so an
// account has to be emptied child-first before the users row can go.
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(20) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY REFERENCES users(id),
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			locale VARCHAR(8) NOT NULL DEFAULT 'id',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS journals (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			title TEXT,
			content TEXT NOT NULL CHECK (length(btrim(content)) > 0),
			mood VARCHAR(20),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_journals_user_created ON journals (user_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS journal_summaries (
			journal_id UUID PRIMARY KEY REFERENCES journals(id) ON DELETE CASCADE,
			summary TEXT NOT NULL DEFAULT '',
			ai_suggestion TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS weekly_summaries (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			week_start DATE NOT NULL,
			week_end DATE NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			ai_suggestion TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, week_start, week_end)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_weekly_summaries_user_week ON weekly_summaries (user_id, week_start DESC)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
