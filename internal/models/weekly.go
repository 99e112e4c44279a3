package models

import "time"

// WeeklyRecap is the AI recap of one user's Monday–Sunday week.
// WeekStart and WeekEnd are calendar dates formatted as 2006-01-02.
type WeeklyRecap struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"-"`
	WeekStart  string    `bson:"week_start" json:"week_start"`
	WeekEnd    string    `bson:"week_end" json:"week_end"`
	Summary    string    `bson:"summary" json:"summary"`
	Suggestion string    `bson:"ai_suggestion" json:"ai_suggestion"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
