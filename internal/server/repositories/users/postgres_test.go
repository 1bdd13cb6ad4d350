package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
)

var _ Repository = (*PostgresRepository)(nil)

const (
	insertQuery = `INSERT INTO users \(username, salt, master_key_verifier\) VALUES \(\$1, \$2, \$3\) RETURNING id`
	selectQuery = `SELECT id, username, master_key_verifier, salt FROM users WHERE username = \$1`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("alice@example.org", []byte("salt"), []byte("verifier")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("42"))

	u := &models.User{UserName: "alice@example.org", Salt: []byte("salt"), Verifier: []byte("verifier")}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "alice@example.org", got.UserName)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("alice@example.org", []byte("salt"), []byte("verifier")).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice@example.org", Salt: []byte("salt"), Verifier: []byte("verifier")})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("alice@example.org", []byte("salt"), []byte("verifier")).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice@example.org", Salt: []byte("salt"), Verifier: []byte("verifier")})
	require.ErrorContains(t, err, "db error: db down")
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).
		WithArgs("alice@example.org").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "master_key_verifier", "salt"}).
			AddRow("u-1", "alice@example.org", []byte("ver"), []byte("salt")))

	got, err := repo.GetUserByLogin(context.Background(), "alice@example.org")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "u-1", UserName: "alice@example.org", Verifier: []byte("ver"), Salt: []byte("salt")}, got)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	require.ErrorContains(t, err, "db error: db err")
}
