package models

import "time"

// User is the identity record. Only the username is public.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Profile holds per-account preferences.
type Profile struct {
	UserID      string    `bson:"_id" json:"user_id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Locale      string    `bson:"locale" json:"locale"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
