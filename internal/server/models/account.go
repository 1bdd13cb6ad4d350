package models

import "time"

// Account is one stored TOTP record. Envelope is the client-side ciphertext
// of the seed and is never interpreted here.
type Account struct {
	ID        string
	UserID    string
	Name      string
	Issuer    string
	IconSlug  string
	Envelope  string
	Digits    int
	Period    int
	CreatedAt time.Time
}

// AccountFields are the columns an update may change.
type AccountFields struct {
	Name     string
	Issuer   string
	IconSlug string
}
