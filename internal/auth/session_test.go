package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/optionshub/mediavault-server/internal/errors"
)

func TestVerifySecret_Plaintext(t *testing.T) {
	svc := NewSessionService("admin123", "", time.Hour)

	assert.NoError(t, svc.VerifySecret("admin123"))
	assert.ErrorIs(t, svc.VerifySecret("wrong"), apperrors.ErrInvalidSecret)
	assert.ErrorIs(t, svc.VerifySecret(""), apperrors.ErrInvalidSecret)
}

func TestVerifySecret_Hashed(t *testing.T) {
	hash, err := HashSecret("admin123")
	require.NoError(t, err)

	// Hash takes precedence even when a plaintext secret is also set.
	svc := NewSessionService("something-else", hash, time.Hour)

	assert.NoError(t, svc.VerifySecret("admin123"))
	assert.ErrorIs(t, svc.VerifySecret("something-else"), apperrors.ErrInvalidSecret)
}

func TestIssueAndVerifySession(t *testing.T) {
	svc := NewSessionService("admin123", "", time.Hour)

	token, expiresAt, err := svc.IssueSession("admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	assert.NoError(t, svc.VerifySession(token))
}

func TestIssueSession_WrongSecret(t *testing.T) {
	svc := NewSessionService("admin123", "", time.Hour)

	_, _, err := svc.IssueSession("nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSecret)
}

func TestVerifySession_Invalid(t *testing.T) {
	svc := NewSessionService("admin123", "", time.Hour)

	assert.ErrorIs(t, svc.VerifySession("garbage"), apperrors.ErrUnauthorized)

	// Tokens from another process (another key) are rejected.
	other := NewSessionService("admin123", "", time.Hour)
	token, _, err := other.IssueSession("admin123")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.VerifySession(token), apperrors.ErrUnauthorized)
}

func TestVerifySession_Expired(t *testing.T) {
	svc := NewSessionService("admin123", "", -time.Minute)

	token, _, err := svc.IssueSession("admin123")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.VerifySession(token), apperrors.ErrUnauthorized)
}

func TestHashSecret_Format(t *testing.T) {
	hash, err := HashSecret("s3cret")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifySecretHash(hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecretHash(hash, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifySecretHash("not-a-hash", "s3cret")
	require.NoError(t, err)
	assert.False(t, ok)
}
