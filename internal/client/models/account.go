// Package models defines the client-side shapes of stored account records.
package models

import "time"

// Record is an account as held by a record store. Envelope is the only
// field derived from the seed; stores never interpret it.
type Record struct {
	ID        string
	Name      string
	Issuer    string
	IconSlug  string
	Envelope  string
	Digits    int
	Period    int
	CreatedAt time.Time
}

// NewRecord is what a store needs to create a Record; the store assigns
// ID and CreatedAt.
type NewRecord struct {
	Name     string
	Issuer   string
	IconSlug string
	Envelope string
	Digits   int
	Period   int
}

// Fields are the editable, non-secret parts of a Record.
type Fields struct {
	Name     string
	Issuer   string
	IconSlug string
}
