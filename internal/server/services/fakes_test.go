package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/dbx"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
	accountsrepo "github.com/dmitrijs2005/otpkeeper/internal/server/repositories/accounts"
	refreshtokensrepo "github.com/dmitrijs2005/otpkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/otpkeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

type fakeUsersRepo struct {
	created   *models.User
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr  error
	deleted []string

	createErr  error
	createdFor []string
	validity   time.Duration
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createdFor = append(f.createdFor, userID)
	f.validity = validity
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

type fakeAccountsRepo struct {
	listOut []models.Account
	err     error

	inserted models.Account
	updated  models.AccountFields
	scope    [2]string
}

func (f *fakeAccountsRepo) List(ctx context.Context, userID string) ([]models.Account, error) {
	f.scope = [2]string{userID, ""}
	return f.listOut, f.err
}

func (f *fakeAccountsRepo) Insert(ctx context.Context, a models.Account) (models.Account, error) {
	f.inserted = a
	if f.err != nil {
		return models.Account{}, f.err
	}
	a.ID = "00000000-0000-0000-0000-000000000001"
	return a, nil
}

func (f *fakeAccountsRepo) Update(ctx context.Context, userID, id string, fields models.AccountFields) error {
	f.scope = [2]string{userID, id}
	f.updated = fields
	return f.err
}

func (f *fakeAccountsRepo) Delete(ctx context.Context, userID, id string) error {
	f.scope = [2]string{userID, id}
	return f.err
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	a *fakeAccountsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error            { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository           { return m.a }
