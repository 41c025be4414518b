package models

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // sha256 hex
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserChats keeps a user's whole conversation as one json blob; the
// backend replaces it wholesale on every turn.
type UserChats struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Msgs      string    `db:"msgs" json:"msgs"` // []RoleMsg as json
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
