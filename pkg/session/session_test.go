package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/pkg/client"
)

type fakeAuth struct {
	registered client.RegisterInput
	err        error
	refreshErr error
	refreshed  []string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*client.Auth, error) {
	if f.err != nil {
		return nil, f.err
	}
	if password != "password123" {
		return nil, &client.HTTPError{StatusCode: 401, Body: "unauthorized"}
	}
	return &client.Auth{
		User:         client.User{ID: "u1", Name: "Asha Rai", Email: email},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, nil
}

func (f *fakeAuth) Register(_ context.Context, in client.RegisterInput) (*client.Auth, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = in
	return &client.Auth{
		User:        client.User{ID: "u2", Name: in.FirstName + " " + in.LastName, Email: in.Email},
		AccessToken: "access-2",
	}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, refreshToken string) (*client.Auth, error) {
	f.refreshed = append(f.refreshed, refreshToken)
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	n := len(f.refreshed) + 1
	return &client.Auth{
		User:         client.User{ID: "u1", Name: "Asha Rai", Email: "asha@example.com"},
		AccessToken:  fmt.Sprintf("access-%d", n),
		RefreshToken: fmt.Sprintf("refresh-%d", n),
	}, nil
}

func newSession(t *testing.T, store Store) *Session {
	t.Helper()
	s, err := New(context.Background(), store, &fakeAuth{}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNew_Anonymous(t *testing.T) {
	s := newSession(t, NewMemoryStore())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
	assert.ErrorIs(t, s.RequireAuth(), ErrAuthRequired)
	assert.Empty(t, s.Wishlist())
}

func TestLogin_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newSession(t, store)

	_, err := s.Login(ctx, "asha@example.com", "wrong")
	assert.True(t, client.IsStatus(err, 401))
	assert.False(t, s.IsAuthenticated())

	user, err := s.Login(ctx, "asha@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rai", user.Name)
	assert.NoError(t, s.RequireAuth())

	restored := newSession(t, store)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "access-1", restored.Token())
	refresh, ok, err := store.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "refresh-1", refresh)
	assert.Equal(t, "asha@example.com", restored.User().Email)
}

func TestRegister_SplitsName(t *testing.T) {
	auth := &fakeAuth{}
	s, err := New(context.Background(), NewMemoryStore(), auth, nil)
	require.NoError(t, err)

	user, err := s.Register(context.Background(), "  Ram Bahadur Thapa ", "ram@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Ram", auth.registered.FirstName)
	assert.Equal(t, "Bahadur Thapa", auth.registered.LastName)
	assert.Equal(t, "u2", user.ID)
	assert.True(t, s.IsAuthenticated())
}

func TestRegister_ErrorLeavesSessionAnonymous(t *testing.T) {
	s, err := New(context.Background(), NewMemoryStore(), &fakeAuth{err: errors.New("boom")}, nil)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "Ram", "ram@example.com", "password123")
	assert.EqualError(t, err, "boom")
	assert.False(t, s.IsAuthenticated())
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newSession(t, store)
	bruno := client.Pet{ID: "p1", Name: "Bruno"}
	mimi := client.Pet{ID: "p2", Name: "Mimi"}

	added, err := s.AddToWishlist(ctx, bruno)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.False(t, added)

	_, err = s.Login(ctx, "asha@example.com", "password123")
	require.NoError(t, err)

	added, err = s.AddToWishlist(ctx, bruno)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = s.AddToWishlist(ctx, bruno)
	require.NoError(t, err)
	assert.False(t, added, "duplicates are ignored")
	_, err = s.AddToWishlist(ctx, mimi)
	require.NoError(t, err)

	assert.Equal(t, []client.Pet{bruno, mimi}, s.Wishlist())
	assert.True(t, s.InWishlist("p2"))

	require.NoError(t, s.RemoveFromWishlist(ctx, "p1"))
	assert.False(t, s.InWishlist("p1"))

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, []client.Pet{mimi}, s.Wishlist(), "logout keeps the wishlist")

	restored := newSession(t, store)
	assert.False(t, restored.IsAuthenticated())
	assert.Equal(t, []client.Pet{mimi}, restored.Wishlist())
}

func TestWishlist_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, NewMemoryStore())
	_, err := s.Login(ctx, "asha@example.com", "password123")
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, client.Pet{ID: "p1", Name: "Bruno"})
	require.NoError(t, err)

	list := s.Wishlist()
	list[0].Name = "changed"
	assert.Equal(t, "Bruno", s.Wishlist()[0].Name)
}

func TestNew_CorruptEntriesTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyUser, "{not json"))
	require.NoError(t, store.Set(ctx, KeyToken, "tok"))
	require.NoError(t, store.Set(ctx, KeyWishlist, `[{"id":"p1"},`))

	s := newSession(t, store)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Wishlist())
}

func TestNew_UserWithoutTokenIsAnonymous(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyUser, `{"id":"u1","name":"Asha","email":"a@b.com"}`))

	s := newSession(t, store)
	assert.False(t, s.IsAuthenticated())
}

var errUnauthorized = &client.HTTPError{StatusCode: http.StatusUnauthorized, Body: "unauthorized"}

// acceptOnly fails with 401 for every token except valid.
func acceptOnly(valid string, seen *[]string) func(string) error {
	return func(token string) error {
		*seen = append(*seen, token)
		if token != valid {
			return errUnauthorized
		}
		return nil
	}
}

func TestWithAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("requires sign-in", func(t *testing.T) {
		s := newSession(t, NewMemoryStore())
		called := false
		err := s.WithAuth(ctx, func(string) error { called = true; return nil })
		assert.ErrorIs(t, err, ErrAuthRequired)
		assert.False(t, called)
	})

	t.Run("valid token is used as is", func(t *testing.T) {
		auth := &fakeAuth{}
		s, err := New(ctx, NewMemoryStore(), auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)

		var seen []string
		require.NoError(t, s.WithAuth(ctx, acceptOnly("access-1", &seen)))
		assert.Equal(t, []string{"access-1"}, seen)
		assert.Empty(t, auth.refreshed)
	})

	t.Run("401 refreshes once and retries", func(t *testing.T) {
		auth := &fakeAuth{}
		store := NewMemoryStore()
		s, err := New(ctx, store, auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)

		var seen []string
		require.NoError(t, s.WithAuth(ctx, acceptOnly("access-2", &seen)))
		assert.Equal(t, []string{"access-1", "access-2"}, seen)
		assert.Equal(t, []string{"refresh-1"}, auth.refreshed)
		assert.Equal(t, "access-2", s.Token())

		restored, err := New(ctx, store, auth, nil)
		require.NoError(t, err)
		assert.Equal(t, "access-2", restored.Token())
		refresh, _, err := store.Get(ctx, KeyRefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "refresh-2", refresh)
	})

	t.Run("rejected refresh signs out", func(t *testing.T) {
		auth := &fakeAuth{refreshErr: errUnauthorized}
		store := NewMemoryStore()
		s, err := New(ctx, store, auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)
		_, err = s.AddToWishlist(ctx, client.Pet{ID: "p1", Name: "Bruno"})
		require.NoError(t, err)

		var seen []string
		err = s.WithAuth(ctx, acceptOnly("never", &seen))
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, []string{"access-1"}, seen)
		assert.False(t, s.IsAuthenticated())
		assert.Len(t, s.Wishlist(), 1, "the wishlist survives an expired session")

		for _, key := range []string{KeyUser, KeyToken, KeyRefreshToken} {
			_, ok, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, key)
		}
	})

	t.Run("retry still unauthorized signs out", func(t *testing.T) {
		auth := &fakeAuth{}
		s, err := New(ctx, NewMemoryStore(), auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)

		var seen []string
		err = s.WithAuth(ctx, acceptOnly("never", &seen))
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, []string{"access-1", "access-2"}, seen)
		assert.Len(t, auth.refreshed, 1)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("no refresh token signs out", func(t *testing.T) {
		auth := &fakeAuth{}
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, KeyUser, `{"id":"u1","name":"Asha","email":"a@b.com"}`))
		require.NoError(t, store.Set(ctx, KeyToken, "old-access"))
		s, err := New(ctx, store, auth, nil)
		require.NoError(t, err)
		require.True(t, s.IsAuthenticated())

		var seen []string
		err = s.WithAuth(ctx, acceptOnly("never", &seen))
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, auth.refreshed)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("refresh transport error keeps the session", func(t *testing.T) {
		auth := &fakeAuth{refreshErr: errors.New("connection refused")}
		s, err := New(ctx, NewMemoryStore(), auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)

		var seen []string
		err = s.WithAuth(ctx, acceptOnly("never", &seen))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionExpired)
		assert.Contains(t, err.Error(), "connection refused")
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		auth := &fakeAuth{}
		s, err := New(ctx, NewMemoryStore(), auth, nil)
		require.NoError(t, err)
		_, err = s.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)

		forbidden := &client.HTTPError{StatusCode: http.StatusForbidden}
		err = s.WithAuth(ctx, func(string) error { return forbidden })
		assert.Same(t, forbidden, err)
		assert.Empty(t, auth.refreshed)
		assert.True(t, s.IsAuthenticated())
	})
}
