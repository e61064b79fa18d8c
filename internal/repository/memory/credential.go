package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/pkg/security"
)

// CredentialStore keeps credentials in process memory. The gateway runs a
// single instance, so durable storage buys nothing for demo deployments;
// production wires the postgres store instead.
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]*model.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]*model.Credential)}
}

// Seed hashes and inserts the configured bootstrap users, skipping any
// username already present.
func (s *CredentialStore) Seed(users map[string]string, hasher security.PasswordHasher) error {
	for username, password := range users {
		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		cred := &model.Credential{
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		if err := s.Insert(context.Background(), cred); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}
	return nil
}

func (s *CredentialStore) Lookup(_ context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (s *CredentialStore) Insert(_ context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.creds[cred.Username]; ok {
		return repository.ErrDuplicate
	}
	copied := *cred
	s.creds[cred.Username] = &copied
	return nil
}
