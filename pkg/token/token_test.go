package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, expiresAt, err := svc.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	signed, _, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, _, err := NewService("secret-a", time.Hour).Issue("alice")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tests := []string{
		"",
		"not-a-token",
		"a.b.c",
	}
	for _, tc := range tests {
		_, err := svc.Verify(tc)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tc)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, _, err := svc.Issue("alice")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsEmptySubject(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, _, err := svc.Issue("")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
