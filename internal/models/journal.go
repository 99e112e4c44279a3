package models

import "time"

// JournalEntry is a private diary entry owned by exactly one user.
// Title and Mood are empty when the author left them out.
type JournalEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"-"`
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Mood      string    `bson:"mood,omitempty" json:"mood,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// EntrySummary is the AI summary for one entry, keyed by the entry id.
type EntrySummary struct {
	EntryID    string    `bson:"_id" json:"journal_id"`
	UserID     string    `bson:"user_id" json:"-"`
	Summary    string    `bson:"summary" json:"summary"`
	Suggestion string    `bson:"ai_suggestion" json:"ai_suggestion"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// EntryWithSummary is a timeline row: an entry plus its summary, if one was generated.
type EntryWithSummary struct {
	JournalEntry
	Summary *EntrySummary `json:"summary"`
}
