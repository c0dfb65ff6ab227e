// Package cookies persists the client cookie jar in SQLite.
package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string, now time.Time) (*models.Cookie, error) {
	var (
		value     string
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cookies WHERE name = ?`, name,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}

	c := &models.Cookie{Name: name, Value: value, ExpiresAt: time.UnixMilli(expiresAt)}
	if c.Expired(now) {
		if err := r.Remove(ctx, name); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return c, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, c models.Cookie) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, c.Name, c.Value, c.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to remove cookie[%s]: %w", name, err)
	}
	return nil
}
