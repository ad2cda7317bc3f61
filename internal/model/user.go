// Package model defines the data structures shared across the application layers.
package model

import "time"

// User represents a registered account.
//
// Password holds the bcrypt digest, never the plaintext. The `json:"-"` tag
// keeps it out of every API response — handlers can marshal a User directly
// without leaking the credential.
type User struct {
	ID        int64     `json:"id"        db:"id"`
	Username  string    `json:"username"  db:"username"`
	Email     string    `json:"email"     db:"email"`
	Password  string    `json:"-"         db:"password"` // bcrypt hash
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
