package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrEmptyToken = errors.New("empty session token")

// Snapshot is a point in time copy of the session.
type Snapshot struct {
	Token      string
	IsLoggedIn bool
	Email      string
}

// Store holds the current bearer token and mirrors it to a SecretStore.
// Reads are safe from concurrent requests.
type Store struct {
	mutex   sync.RWMutex
	token   string
	email   string
	secrets SecretStore
	key     SecretKey
}

func NewStore(secrets SecretStore, key SecretKey) *Store {
	return &Store{
		secrets: secrets,
		key:     key,
	}
}

// Init loads a previously persisted token, if any. A missing token leaves the
// store logged out.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.secrets.Get(ctx, s.key)
	if errors.Is(err, ErrSecretNotFound) {
		log.Debugln("session: no persisted token")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}

	var email string
	if claims, err := ParseClaims(token); err == nil {
		email = claims.Email
	}

	s.mutex.Lock()
	s.token = token
	s.email = email
	s.mutex.Unlock()

	log.Debugf("session: restored persisted token for [%s]", email)
	return nil
}

// SetLoggedIn makes token the current session and persists it. The
// in-memory session is set even when persisting fails.
func (s *Store) SetLoggedIn(ctx context.Context, email, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mutex.Lock()
	s.token = token
	s.email = email
	s.mutex.Unlock()

	if err := s.secrets.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Logout clears the in-memory session only.
func (s *Store) Logout() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = ""
	s.email = ""
}

// Teardown logs out and removes the persisted token.
func (s *Store) Teardown(ctx context.Context) error {
	s.Logout()
	if err := s.secrets.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrSecretNotFound) {
		return fmt.Errorf("delete persisted token: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token
}

func (s *Store) Email() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.email
}

func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

func (s *Store) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return Snapshot{
		Token:      s.token,
		IsLoggedIn: s.token != "",
		Email:      s.email,
	}
}

// TokenProvider is handed to the API client, which calls it per request.
func (s *Store) TokenProvider() func() string {
	return s.Token
}

// Expired reports whether the current token is a jwt whose exp has passed.
// Opaque tokens never expire on the client.
func (s *Store) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return false
	}
	return claims.Expired(now)
}
