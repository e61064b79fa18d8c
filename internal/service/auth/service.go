package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/security"
	"github.com/careops/hospital-platform/pkg/token"
)

// Service authenticates callers at the edge. Login failures never reveal
// whether the username or the password was wrong.
type Service struct {
	store  repository.CredentialStore
	hasher security.PasswordHasher
	tokens token.Service
	logger zerolog.Logger
}

func NewService(store repository.CredentialStore, hasher security.PasswordHasher, tokens token.Service, logger zerolog.Logger) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *Service) Login(ctx context.Context, req *model.AuthRequest) (*model.AuthResponse, error) {
	cred, err := s.store.Lookup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if err := s.hasher.Compare(cred.PasswordHash, req.Password); err != nil {
		s.logger.Warn().Str("username", req.Username).Msg("login rejected")
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	signed, expiresAt, err := s.tokens.Issue(cred.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResponse{
		Token:     signed,
		Username:  cred.Username,
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
	}, nil
}

func (s *Service) Register(ctx context.Context, req *model.AuthRequest) (*model.AuthResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	cred := &model.Credential{
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Insert(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(fmt.Sprintf("username already taken: %s", req.Username))
		}
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("user registered")
	return s.Login(ctx, req)
}

// Validate reports whether a presented token is currently acceptable,
// without issuing a new one.
func (s *Service) Validate(tokenStr string) *model.ValidateResponse {
	subject, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return &model.ValidateResponse{Valid: false, Message: "token is invalid or expired"}
	}
	return &model.ValidateResponse{Valid: true, Username: subject}
}
