package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

func (s *credentialStore) Lookup(ctx context.Context, username string) (*model.Credential, error) {
	query := `
		SELECT username, password_hash, created_at
		FROM credentials
		WHERE username = $1
	`
	var cred model.Credential
	err := s.db.GetContext(ctx, &cred, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lookup credential: %w", err)
	}
	return &cred, nil
}

func (s *credentialStore) Insert(ctx context.Context, cred *model.Credential) error {
	query := `
		INSERT INTO credentials (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`
	cred.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, query, cred.Username, cred.PasswordHash, cred.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}
