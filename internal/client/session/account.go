package session

import (
	"time"

	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

// State tracks how far an account's envelope has been opened in this session.
//
// Encrypted and Decrypting exist only inside LoadAll: the cache is swapped
// after every record is settled, so callers only ever see Ready or
// DecryptFailed.
type State int

const (
	StateEncrypted State = iota
	StateDecrypting
	StateReady
	StateDecryptFailed
)

func (s State) String() string {
	switch s {
	case StateEncrypted:
		return "encrypted"
	case StateDecrypting:
		return "decrypting"
	case StateReady:
		return "ready"
	case StateDecryptFailed:
		return "decrypt_failed"
	default:
		return "unknown"
	}
}

// Account is a snapshot of one cached account. Snapshots never carry the
// seed; use Session.Seed to read it.
type Account struct {
	ID        string
	Name      string
	Issuer    string
	IconSlug  string
	Envelope  string
	Params    totp.Params
	CreatedAt time.Time

	State State
	// Err is the decryption failure when State is StateDecryptFailed.
	Err error
}

type entry struct {
	Account
	seed []byte
}

func newEntry(r models.Record) *entry {
	return &entry{Account: Account{
		ID:        r.ID,
		Name:      r.Name,
		Issuer:    r.Issuer,
		IconSlug:  r.IconSlug,
		Envelope:  r.Envelope,
		Params:    totp.Params{Digits: r.Digits, Period: r.Period},
		CreatedAt: r.CreatedAt,
		State:     StateEncrypted,
	}}
}

func (e *entry) wipe() {
	for i := range e.seed {
		e.seed[i] = 0
	}
	e.seed = nil
}

// CodeView is what a display needs for one account at one instant.
type CodeView struct {
	ID       string
	Name     string
	Issuer   string
	IconSlug string
	State    State

	// Code is the current code, ErrorCode when the account cannot produce
	// one, or "" while the account is still loading.
	Code      string
	Remaining int
	Err       error
}
