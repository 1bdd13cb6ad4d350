// Package accounts stores encrypted TOTP records per user in PostgreSQL.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
)

// Repository is scoped by user: no method reads or changes a record of
// another user, and such records are reported as common.ErrorNotFound.
type Repository interface {
	// List returns the records of userID, newest first.
	List(ctx context.Context, userID string) ([]models.Account, error)
	// Insert stores a and returns it with its ID and CreatedAt set.
	Insert(ctx context.Context, a models.Account) (models.Account, error)
	Update(ctx context.Context, userID, id string, f models.AccountFields) error
	Delete(ctx context.Context, userID, id string) error
}
