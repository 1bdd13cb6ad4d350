// Package session holds the decrypted accounts of the signed-in user.
//
// A Session is the only place plaintext seeds live. It fetches envelopes
// from a RecordStore, opens them with the user's passphrase, and computes
// codes from the cached seeds on request. Everything it sends to the store
// is ciphertext or non-secret metadata.
//
// Store failures abort only the operation in flight and leave the cache as
// it was. A record that cannot be decrypted is kept in StateDecryptFailed
// and reported with ErrorCode; it never produces a numeric code.
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/otpkeeper/internal/base32x"
	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/icons"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

// ErrorCode is shown in place of a code for accounts that cannot produce one.
const ErrorCode = "ERROR"

var (
	ErrNameRequired = errors.New("name is required")
	ErrNotReady     = errors.New("account is not decrypted")
)

// RecordStore persists account records for one user. Implementations
// report a missing or foreign record as common.ErrorNotFound and any other
// failure wrapped in common.ErrStoreUnavailable.
type RecordStore interface {
	List(ctx context.Context) ([]models.Record, error)
	Insert(ctx context.Context, r models.NewRecord) (models.Record, error)
	Update(ctx context.Context, id string, f models.Fields) error
	Delete(ctx context.Context, id string) error
}

// Vault seals and opens seed envelopes.
type Vault interface {
	Encrypt(seed, passphrase string) (string, error)
	Decrypt(envelope, passphrase string) (string, error)
}

// Generator computes codes for the present instant.
type Generator interface {
	Generate(seed string, p totp.Params) (string, error)
	SecondsRemaining(period int) int
}

type Session struct {
	store  RecordStore
	vault  Vault
	gen    Generator
	logger logging.Logger
	limit  int

	mu       sync.RWMutex
	accounts []*entry
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithDecryptLimit bounds how many envelopes LoadAll opens at once.
func WithDecryptLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.limit = n
		}
	}
}

func New(store RecordStore, vault Vault, gen Generator, opts ...Option) *Session {
	s := &Session{
		store:  store,
		vault:  vault,
		gen:    gen,
		logger: logging.Discard(),
		limit:  runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "session")
	return s
}

// LoadAll replaces the cache with the store's records, each decrypted
// independently. A record that fails to decrypt ends in StateDecryptFailed
// without affecting the others. Only a store failure or cancellation fails
// the call, and then the previous cache is kept.
func (s *Session) LoadAll(ctx context.Context, passphrase string) ([]Account, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	loaded := make([]*entry, len(recs))
	for i, r := range recs {
		loaded[i] = newEntry(r)
	}

	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, e := range loaded {
		// in flight; never published, see State
		e.State = StateDecrypting
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed, err := s.vault.Decrypt(e.Envelope, passphrase)
			if err != nil {
				e.State = StateDecryptFailed
				e.Err = err
				return nil
			}
			e.seed = []byte(seed)
			e.State = StateReady
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, e := range loaded {
			e.wipe()
		}
		return nil, err
	}

	failed := 0
	for _, e := range loaded {
		if e.State == StateDecryptFailed {
			failed++
			s.logger.Warn(ctx, "record could not be decrypted", "id", e.ID, "error", e.Err)
		}
	}
	s.logger.Info(ctx, "accounts loaded", "total", len(loaded), "failed", failed)

	s.mu.Lock()
	old := s.accounts
	s.accounts = loaded
	out := snapshot(loaded)
	s.mu.Unlock()

	for _, e := range old {
		e.wipe()
	}
	return out, nil
}

// Add validates rawSeed, seals it and stores a new record. The new account
// is Ready at once from the seed in hand and is placed first, matching
// newest-first list order. Invalid input never reaches the store.
func (s *Session) Add(ctx context.Context, name, issuer, rawSeed, passphrase string) (Account, error) {
	return s.add(ctx, name, issuer, rawSeed, totp.Params{}, passphrase)
}

// AddURI adds the account described by an otpauth:// URI.
func (s *Session) AddURI(ctx context.Context, uri, passphrase string) (Account, error) {
	k, err := totp.ParseURI(uri)
	if err != nil {
		return Account{}, err
	}
	name := k.Name
	if strings.TrimSpace(name) == "" {
		name = k.Issuer
	}
	return s.add(ctx, name, k.Issuer, k.Secret, k.Params, passphrase)
}

func (s *Session) add(ctx context.Context, name, issuer, rawSeed string, p totp.Params, passphrase string) (Account, error) {
	name = strings.TrimSpace(name)
	issuer = strings.TrimSpace(issuer)
	if name == "" {
		return Account{}, ErrNameRequired
	}

	seed := base32x.Canonicalize(rawSeed)
	if _, err := s.gen.Generate(seed, p); err != nil {
		return Account{}, err
	}

	envelope, err := s.vault.Encrypt(seed, passphrase)
	if err != nil {
		return Account{}, fmt.Errorf("encrypt seed: %w", err)
	}

	rec, err := s.store.Insert(ctx, models.NewRecord{
		Name:     name,
		Issuer:   issuer,
		IconSlug: icons.GuessSlug(issuer),
		Envelope: envelope,
		Digits:   p.Digits,
		Period:   p.Period,
	})
	if err != nil {
		return Account{}, fmt.Errorf("insert record: %w", err)
	}

	e := newEntry(rec)
	e.seed = []byte(seed)
	e.State = StateReady

	s.mu.Lock()
	s.accounts = append([]*entry{e}, s.accounts...)
	s.mu.Unlock()

	s.logger.Info(ctx, "account added", "id", e.ID, "issuer", e.Issuer)
	return e.Account, nil
}

// Edit changes the non-secret fields of a cached account, remotely first.
// The envelope and the cached seed are untouched.
func (s *Session) Edit(ctx context.Context, id string, f models.Fields) (Account, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Issuer = strings.TrimSpace(f.Issuer)
	if f.Name == "" {
		return Account{}, ErrNameRequired
	}
	if f.IconSlug == "" {
		f.IconSlug = icons.GuessSlug(f.Issuer)
	}

	if _, ok := s.Account(id); !ok {
		return Account{}, common.ErrorNotFound
	}

	if err := s.store.Update(ctx, id, f); err != nil {
		return Account{}, fmt.Errorf("update record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(id)
	if e == nil {
		// removed concurrently
		return Account{}, common.ErrorNotFound
	}
	e.Name, e.Issuer, e.IconSlug = f.Name, f.Issuer, f.IconSlug
	return e.Account, nil
}

// Remove deletes a record remotely and then drops it, with its seed, from
// the cache. If the store fails the account stays listed.
func (s *Session) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.mu.Lock()
	for i, e := range s.accounts {
		if e.ID == id {
			e.wipe()
			s.accounts = append(s.accounts[:i:i], s.accounts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "account removed", "id", id)
	return nil
}

// Codes computes the current code of every cached account from its cached
// seed. No decryption happens here.
func (s *Session) Codes() []CodeView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]CodeView, 0, len(s.accounts))
	for _, e := range s.accounts {
		v := CodeView{
			ID:        e.ID,
			Name:      e.Name,
			Issuer:    e.Issuer,
			IconSlug:  e.IconSlug,
			State:     e.State,
			Remaining: s.gen.SecondsRemaining(e.Params.Period),
		}
		switch e.State {
		case StateReady:
			code, err := s.gen.Generate(string(e.seed), e.Params)
			if err != nil {
				v.Code, v.Err = ErrorCode, err
			} else {
				v.Code = code
			}
		case StateDecryptFailed:
			v.Code, v.Err = ErrorCode, e.Err
		}
		views = append(views, v)
	}
	return views
}

// Run calls fn with fresh codes immediately and then every interval until
// ctx is done.
func (s *Session) Run(ctx context.Context, interval time.Duration, fn func([]CodeView)) {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	fn(s.Codes())
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(s.Codes())
		}
	}
}

// Accounts lists cached accounts, newest first.
func (s *Session) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.accounts)
}

// Account returns the cached account with id.
func (s *Session) Account(id string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.find(id); e != nil {
		return e.Account, true
	}
	return Account{}, false
}

// Search returns accounts whose name or issuer contains query, ignoring case.
func (s *Session) Search(query string) []Account {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Account{}
	for _, e := range s.accounts {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Issuer), q) {
			out = append(out, e.Account)
		}
	}
	return out
}

// Seed returns the plaintext seed of a Ready account.
func (s *Session) Seed(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.find(id)
	if e == nil {
		return "", common.ErrorNotFound
	}
	if e.State != StateReady {
		return "", ErrNotReady
	}
	return string(e.seed), nil
}

// Close wipes every cached seed and empties the cache.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.accounts {
		e.wipe()
	}
	s.accounts = nil
}

func (s *Session) find(id string) *entry {
	for _, e := range s.accounts {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func snapshot(entries []*entry) []Account {
	out := make([]Account, len(entries))
	for i, e := range entries {
		out[i] = e.Account
	}
	return out
}
