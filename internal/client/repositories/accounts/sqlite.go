// Package accounts is the local record store: account envelopes kept in a
// SQLite file, for use without a server.
package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/dbx"
	"github.com/dmitrijs2005/otpkeeper/internal/timex"
)

// SQLiteRepository stores the records of one owner. Records of other owners
// in the same file are invisible to it.
type SQLiteRepository struct {
	db    dbx.DBTX
	owner string
	clock timex.Clock
	newID func() string
}

func NewSQLiteRepository(db dbx.DBTX, owner string) *SQLiteRepository {
	return &SQLiteRepository{db: db, owner: owner, clock: timex.SystemClock{}, newID: uuid.NewString}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStoreUnavailable, op, err)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `SELECT id, name, issuer, icon_slug, envelope, digits, period, created_at
		FROM accounts
		WHERE owner = ?
		ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, r.owner)
	if err != nil {
		return nil, unavailable("select accounts", err)
	}
	defer rows.Close()

	result := []models.Record{}
	for rows.Next() {
		var (
			rec     models.Record
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Issuer, &rec.IconSlug, &rec.Envelope, &rec.Digits, &rec.Period, &created); err != nil {
			return nil, unavailable("scan account", err)
		}
		rec.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("select accounts", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, n models.NewRecord) (models.Record, error) {
	rec := models.Record{
		ID:        r.newID(),
		Name:      n.Name,
		Issuer:    n.Issuer,
		IconSlug:  n.IconSlug,
		Envelope:  n.Envelope,
		Digits:    n.Digits,
		Period:    n.Period,
		CreatedAt: r.clock.Now().UTC(),
	}
	if rec.IconSlug == "" {
		rec.IconSlug = common.DefaultIconSlug
	}

	query := `INSERT INTO accounts (id, owner, name, issuer, icon_slug, envelope, digits, period, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, rec.ID, r.owner, rec.Name, rec.Issuer, rec.IconSlug, rec.Envelope,
		rec.Digits, rec.Period, rec.CreatedAt.UnixNano())
	if err != nil {
		return models.Record{}, unavailable("insert account", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, f models.Fields) error {
	query := `UPDATE accounts SET name = ?, issuer = ?, icon_slug = ? WHERE id = ? AND owner = ?`

	res, err := r.db.ExecContext(ctx, query, f.Name, f.Issuer, f.IconSlug, id, r.owner)
	if err != nil {
		return unavailable("update account", err)
	}
	return dbx.RequireAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ? AND owner = ?`, id, r.owner)
	if err != nil {
		return unavailable("delete account", err)
	}
	return dbx.RequireAffected(res)
}
