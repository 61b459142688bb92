// Package session keeps the signed-in user and their wishlist, mirrored to a
// string key/value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/pkg/client"
)

// Store keys.
const (
	KeyUser         = "user"
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyWishlist     = "wishlist"
)

var (
	// ErrAuthRequired is returned by operations that need a signed-in user.
	ErrAuthRequired = errors.New("please sign in to continue")
	// ErrSessionExpired is returned when the server rejects both the access
	// token and the refresh token. The session is signed out by then.
	ErrSessionExpired = errors.New("your session has expired, please sign in again")

	errNoRefreshToken = errors.New("no refresh token")
)

// User is the signed-in account as kept in the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Authenticator performs the remote login, registration and token refresh
// calls.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.Auth, error)
	Register(ctx context.Context, in client.RegisterInput) (*client.Auth, error)
	Refresh(ctx context.Context, refreshToken string) (*client.Auth, error)
}

// Session holds the current user, bearer token and wishlist.
type Session struct {
	store  Store
	auth   Authenticator
	logger *zap.Logger

	mu           sync.RWMutex
	user         *User
	token        string
	refreshToken string
	wishlist     []client.Pet
}

// New restores a session from store. Unreadable entries are logged and
// treated as absent.
func New(ctx context.Context, store Store, auth Authenticator, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, auth: auth, logger: logger}

	var user User
	hasUser, err := s.load(ctx, KeyUser, &user)
	if err != nil {
		return nil, err
	}
	token, hasToken, err := store.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	refreshToken, _, err := store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if hasUser && hasToken && token != "" {
		s.user = &user
		s.token = token
		s.refreshToken = refreshToken
	}

	var wishlist []client.Pet
	hasWishlist, err := s.load(ctx, KeyWishlist, &wishlist)
	if err != nil {
		return nil, err
	}
	if hasWishlist {
		s.wishlist = wishlist
	}
	return s, nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// RequireAuth returns ErrAuthRequired when nobody is signed in.
func (s *Session) RequireAuth() error {
	if !s.IsAuthenticated() {
		return ErrAuthRequired
	}
	return nil
}

// Login signs in and persists the user and token.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, res)
}

// Register creates an account and signs in. name is split into first and
// last name on the first space.
func (s *Session) Register(ctx context.Context, name, email, password string) (*User, error) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	res, err := s.auth.Register(ctx, client.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: first,
		LastName:  strings.TrimSpace(last),
	})
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, res)
}

// Logout forgets the user and tokens. The wishlist is kept.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.refreshToken = ""
	if err := s.store.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	if err := s.store.Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.store.Delete(ctx, KeyRefreshToken); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// WithAuth runs call with the current access token. If the server answers
// 401 the tokens are refreshed once and call is retried with the new access
// token. When the refresh is rejected too, the session is signed out and
// ErrSessionExpired is returned.
func (s *Session) WithAuth(ctx context.Context, call func(token string) error) error {
	if err := s.RequireAuth(); err != nil {
		return err
	}
	err := call(s.Token())
	if !client.IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	token, rerr := s.refresh(ctx)
	if rerr == nil {
		if err = call(token); !client.IsStatus(err, http.StatusUnauthorized) {
			return err
		}
	} else if !errors.Is(rerr, errNoRefreshToken) && !client.IsStatus(rerr, http.StatusUnauthorized) {
		return fmt.Errorf("refresh session: %w", rerr)
	}

	s.logger.Info("session expired, signing out")
	if err := s.Logout(ctx); err != nil {
		return err
	}
	return ErrSessionExpired
}

func (s *Session) refresh(ctx context.Context) (string, error) {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()
	if refreshToken == "" {
		return "", errNoRefreshToken
	}

	res, err := s.auth.Refresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if _, err := s.signIn(ctx, res); err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

// Wishlist returns a copy of the saved pets in insertion order.
func (s *Session) Wishlist() []client.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]client.Pet, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// InWishlist reports whether a pet with petID is saved.
func (s *Session) InWishlist(petID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.wishlist, petID) >= 0
}

// AddToWishlist saves a pet snapshot. It returns false when the pet was
// already saved.
func (s *Session) AddToWishlist(ctx context.Context, pet client.Pet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return false, ErrAuthRequired
	}
	if indexOf(s.wishlist, pet.ID) >= 0 {
		return false, nil
	}
	updated := append(append([]client.Pet(nil), s.wishlist...), pet)
	if err := s.save(ctx, KeyWishlist, updated); err != nil {
		return false, err
	}
	s.wishlist = updated
	return true, nil
}

// RemoveFromWishlist drops every saved pet with petID.
func (s *Session) RemoveFromWishlist(ctx context.Context, petID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]client.Pet, 0, len(s.wishlist))
	for _, p := range s.wishlist {
		if p.ID != petID {
			updated = append(updated, p)
		}
	}
	if err := s.save(ctx, KeyWishlist, updated); err != nil {
		return err
	}
	s.wishlist = updated
	return nil
}

func (s *Session) signIn(ctx context.Context, res *client.Auth) (*User, error) {
	user := User{ID: res.User.ID, Name: res.User.Name, Email: res.User.Email}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, KeyUser, user); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, KeyToken, res.AccessToken); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := s.store.Set(ctx, KeyRefreshToken, res.RefreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	s.user = &user
	s.token = res.AccessToken
	s.refreshToken = res.RefreshToken

	u := user
	return &u, nil
}

func (s *Session) load(ctx context.Context, key string, v interface{}) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("ignoring corrupt session entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

func (s *Session) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func indexOf(pets []client.Pet, id string) int {
	for i, p := range pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}
