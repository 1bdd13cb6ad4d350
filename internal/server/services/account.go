package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/icons"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/repomanager"
)

const (
	defaultDigits = 6
	defaultPeriod = 30
	maxDigits     = 9
)

// AccountService keeps the account records of each user. Envelopes are
// stored and returned as received; the server cannot open them.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// List returns the records of userID, newest first.
func (s *AccountService) List(ctx context.Context, userID string) ([]models.Account, error) {
	list, err := s.repomanager.Accounts(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return list, nil
}

// Insert stores a new record owned by userID.
func (s *AccountService) Insert(ctx context.Context, userID string, a models.Account) (models.Account, error) {
	a.UserID = userID
	a.Name = strings.TrimSpace(a.Name)
	a.Issuer = strings.TrimSpace(a.Issuer)

	if a.Name == "" {
		return models.Account{}, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if a.Envelope == "" {
		return models.Account{}, fmt.Errorf("%w: envelope is required", common.ErrorValidation)
	}
	if a.Digits < 0 || a.Digits > maxDigits || a.Period < 0 {
		return models.Account{}, fmt.Errorf("%w: digits %d, period %d", common.ErrorValidation, a.Digits, a.Period)
	}
	if a.Digits == 0 {
		a.Digits = defaultDigits
	}
	if a.Period == 0 {
		a.Period = defaultPeriod
	}
	a.IconSlug = normalizeSlug(a.IconSlug)

	out, err := s.repomanager.Accounts(s.db).Insert(ctx, a)
	if err != nil {
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return out, nil
}

// Update changes the non-secret fields of a record owned by userID.
func (s *AccountService) Update(ctx context.Context, userID, id string, f models.AccountFields) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Issuer = strings.TrimSpace(f.Issuer)
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	f.IconSlug = normalizeSlug(f.IconSlug)

	if err := s.repomanager.Accounts(s.db).Update(ctx, userID, id, f); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Delete removes a record owned by userID.
func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Accounts(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func normalizeSlug(slug string) string {
	if !icons.Known(slug) {
		return icons.DefaultSlug
	}
	return slug
}
