package session

import (
	"context"
	"errors"
	"sync"
)

var ErrSecretNotFound = errors.New("secret not found")

// SecretKey identifies the single persisted secret by a fixed
// service/account pair.
type SecretKey struct {
	Service string
	Account string
}

func (k SecretKey) String() string {
	return k.Service + "::" + k.Account
}

// SecretStore persists the session token between process runs.
type SecretStore interface {
	Get(ctx context.Context, key SecretKey) (string, error)
	Set(ctx context.Context, key SecretKey, value string) error
	Delete(ctx context.Context, key SecretKey) error
}

var _ SecretStore = (*MemorySecretStore)(nil)
var _ SecretStore = (*RedisSecretStore)(nil)

type MemorySecretStore struct {
	mutex   sync.Mutex
	secrets map[string]string
}

func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{
		secrets: map[string]string{},
	}
}

func (s *MemorySecretStore) Get(_ context.Context, key SecretKey) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	value, ok := s.secrets[key.String()]
	if !ok {
		return "", ErrSecretNotFound
	}
	return value, nil
}

func (s *MemorySecretStore) Set(_ context.Context, key SecretKey, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.secrets[key.String()] = value
	return nil
}

func (s *MemorySecretStore) Delete(_ context.Context, key SecretKey) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.secrets, key.String())
	return nil
}
