// Package users stores registered users in PostgreSQL.
package users

import (
	"context"

	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user and sets its ID. A taken username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for unknown usernames.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
