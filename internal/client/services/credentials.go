// Package services holds the client's application logic: persisted
// credentials, the in-memory session, the login lockout, route guarding and
// the handlers behind every account form.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/gophaccount/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/dbx"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

// CredentialStore owns the persisted bearer token (the "token" cookie) and
// the persisted user profile (the "user" local storage entry).
//
// The token cookie expires at now+ttl or at the token's exp claim, whichever
// comes first. A token whose exp cannot be read keeps the ttl expiry.
type CredentialStore struct {
	db  *sql.DB
	ttl time.Duration
	log logging.Logger
	now func() time.Time
}

func NewCredentialStore(db *sql.DB, ttl time.Duration, log logging.Logger) *CredentialStore {
	return &CredentialStore{db: db, ttl: ttl, log: log, now: time.Now}
}

func (s *CredentialStore) storage(db dbx.DBTX) localstorage.Repository {
	return localstorage.NewSQLiteRepository(db)
}

func (s *CredentialStore) jar(db dbx.DBTX) cookies.Repository {
	return cookies.NewSQLiteRepository(db)
}

// Token returns the current bearer token, or "" when there is none or the
// cookie has expired. It satisfies client.TokenSource.
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	c, err := s.jar(s.db).Get(ctx, common.TokenCookieName, s.now())
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.Value, nil
}

func (s *CredentialStore) SetToken(ctx context.Context, token string) error {
	return s.jar(s.db).Set(ctx, models.Cookie{
		Name:      common.TokenCookieName,
		Value:     token,
		ExpiresAt: s.cookieExpiry(token),
	})
}

func (s *CredentialStore) cookieExpiry(token string) time.Time {
	expiresAt := s.now().Add(s.ttl)
	exp, ok, err := tokenExpiry(token)
	if err != nil {
		s.log.Debug(context.Background(), "token exp unreadable, using cookie ttl", "err", err)
		return expiresAt
	}
	if ok && exp.Before(expiresAt) {
		return exp
	}
	return expiresAt
}

func (s *CredentialStore) RemoveToken(ctx context.Context) error {
	return s.jar(s.db).Remove(ctx, common.TokenCookieName)
}

// User returns the persisted profile, or nil when none is stored. An entry
// that no longer parses, or holds null, is treated as absent.
func (s *CredentialStore) User(ctx context.Context) (*models.UserProfile, error) {
	raw, ok, err := s.storage(s.db).Get(ctx, common.UserStorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var u *models.UserProfile
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn(ctx, "ignoring unreadable persisted user", "err", err)
		return nil, nil
	}
	return u, nil
}

func (s *CredentialStore) SetUser(ctx context.Context, u models.UserProfile) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.storage(s.db).Set(ctx, common.UserStorageKey, string(data))
}

// Clear removes the user entry and the token cookie in one transaction.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.storage(tx).Remove(ctx, common.UserStorageKey); err != nil {
			return err
		}
		return s.jar(tx).Remove(ctx, common.TokenCookieName)
	})
}
