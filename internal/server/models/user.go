// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account holder. The server keeps only the salt and
// the verifier of the login password, never the password or the vault key.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
