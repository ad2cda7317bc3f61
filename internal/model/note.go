package model

import "time"

// Note is a single note owned by exactly one user.
//
// EditedAt is a pointer because it's nullable: nil until the note is updated
// for the first time, then stamped on every update. CreatedAt is set once at
// insert and never changes.
type Note struct {
	ID        int64      `json:"id"        db:"id"`
	Title     string     `json:"title"     db:"title"`
	Body      string     `json:"body"      db:"body"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	EditedAt  *time.Time `json:"editedAt"  db:"edited_at"`
	UserID    int64      `json:"userId"    db:"user_id"`
}
