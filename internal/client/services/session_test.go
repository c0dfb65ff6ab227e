package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_InitializeFromStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.creds.SetUser(ctx, models.UserProfile{Email: "a@b.com"}))

	f.session.Initialize(ctx)
	assert.True(t, f.session.IsAuthenticated())
	require.NotNil(t, f.session.User())
	assert.Equal(t, "a@b.com", f.session.User().Email)
}

func TestSession_InitializeRunsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.session.Initialize(ctx)
	assert.False(t, f.session.IsAuthenticated())

	require.NoError(t, f.creds.SetUser(ctx, models.UserProfile{Email: "a@b.com"}))
	f.session.Initialize(ctx)
	assert.False(t, f.session.IsAuthenticated())
	assert.Nil(t, f.session.User())
}

func TestSession_LoginPersistsUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.session.Login(ctx, models.UserProfile{Email: "a@b.com"})

	assert.True(t, f.session.IsAuthenticated())
	raw, ok := f.storedValue(t, common.UserStorageKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"a@b.com"}`, raw)
}

func TestSession_LoginIgnoresStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Close())

	f.session.Login(context.Background(), models.UserProfile{Email: "a@b.com"})

	assert.True(t, f.session.IsAuthenticated())
	assert.Equal(t, "a@b.com", f.session.User().Email)
}

func TestSession_UserIsACopy(t *testing.T) {
	f := newFixture(t)
	f.session.Login(context.Background(), models.UserProfile{Email: "a@b.com"})

	u := f.session.User()
	u.Email = "changed@b.com"
	assert.Equal(t, "a@b.com", f.session.User().Email)
}

func TestSession_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.session.Login(ctx, models.UserProfile{Email: "a@b.com"})
	require.NoError(t, f.creds.SetToken(ctx, signedToken(t, timePtr(f.clock.Now().Add(time.Hour)))))

	f.session.Logout(ctx)

	assert.False(t, f.session.IsAuthenticated())
	assert.Nil(t, f.session.User())

	_, ok := f.storedValue(t, common.UserStorageKey)
	assert.False(t, ok)
	tok, err := f.creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	nav, err := f.guard.Check(ctx)
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Equal(t, common.RouteLogin, nav.Path)

	// Second logout is a no-op.
	f.session.Logout(ctx)
	assert.False(t, f.session.IsAuthenticated())
}
