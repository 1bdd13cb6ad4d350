package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/otpkeeper/internal/dbx"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or a running
// transaction, so services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Accounts(db dbx.DBTX) accounts.Repository
}
