package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/dbx"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	"github.com/dmitrijs2005/otpkeeper/internal/server/config"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/otpkeeper/internal/server/repositories/users"
)

type fakeManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *fakeManager) Users(db dbx.DBTX) users.Repository                 { return nil }
func (m *fakeManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return nil }
func (m *fakeManager) Accounts(db dbx.DBTX) accounts.Repository           { return nil }

func stubSeams(t *testing.T, rm *fakeManager) sqlmock.Sqlmock {
	t.Helper()
	origOpen, origRM := openDB, newRepoManager
	t.Cleanup(func() { openDB, newRepoManager = origOpen, origRM })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	openDB = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://test", dsn)
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	return mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = "postgres://test"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	return cfg
}

func TestNewApp_MigratesAndRunsUntilCancelled(t *testing.T) {
	rm := &fakeManager{}
	mock := stubSeams(t, rm)
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)
	assert.True(t, rm.migrated)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_MigrationError(t *testing.T) {
	boom := errors.New("boom")
	mock := stubSeams(t, &fakeManager{migrateErr: boom})
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }

	_, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.ErrorContains(t, err, "no driver")
}

func TestRun_BadAddressReturnsError(t *testing.T) {
	mock := stubSeams(t, &fakeManager{})
	mock.ExpectClose()

	cfg := testConfig()
	cfg.EndpointAddrGRPC = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}
