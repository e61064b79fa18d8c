package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Service issues and verifies signed bearer tokens. The signing key is
// process-wide configuration; rotating it invalidates every outstanding
// token with no grace period.
type Service interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}

type hmacService struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) Service {
	return &hmacService{secret: []byte(secret), ttl: ttl}
}

func (s *hmacService) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify fails closed: malformed, unsigned, tampered, or expired tokens all
// yield ErrInvalidToken, never a partial identity.
func (s *hmacService) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
