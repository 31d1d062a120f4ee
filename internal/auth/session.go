// Package auth verifies the operator secret and issues short-lived
// session tokens for the operator surface.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/id"
)

const (
	tokenIssuer   = "mediavault-server"
	tokenAudience = "mediavault-admin"
)

// SessionService verifies the operator secret and mints PASETO v4.local
// session tokens. The symmetric key is generated per process and never
// persisted, so a server restart invalidates every operator session.
type SessionService struct {
	secret     string
	secretHash string

	symmetricKey paseto.V4SymmetricKey
	duration     time.Duration
}

// NewSessionService creates a session service. Exactly one of secret or
// secretHash should be set; when both are, the hash wins.
func NewSessionService(secret, secretHash string, duration time.Duration) *SessionService {
	return &SessionService{
		secret:       secret,
		secretHash:   secretHash,
		symmetricKey: paseto.NewV4SymmetricKey(),
		duration:     duration,
	}
}

// VerifySecret checks the supplied operator secret. Comparison is
// constant-time; there is no lockout or backoff, retries are unlimited.
func (s *SessionService) VerifySecret(supplied string) error {
	if s.secretHash != "" {
		ok, err := VerifySecretHash(s.secretHash, supplied)
		if err != nil || !ok {
			return apperrors.ErrInvalidSecret
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(s.secret), []byte(supplied)) != 1 {
		return apperrors.ErrInvalidSecret
	}
	return nil
}

// IssueSession verifies the secret and returns a session token with its
// expiry.
func (s *SessionService) IssueSession(supplied string) (token string, expiresAt time.Time, err error) {
	if err := s.VerifySecret(supplied); err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt = now.Add(s.duration)

	t := paseto.NewToken()
	t.SetIssuer(tokenIssuer)
	t.SetAudience(tokenAudience)
	t.SetSubject("operator")
	t.SetIssuedAt(now)
	t.SetNotBefore(now)
	t.SetExpiration(expiresAt)

	jti, err := id.Generate("session")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate session ID: %w", err)
	}
	t.SetJti(jti)

	return t.V4Encrypt(s.symmetricKey, nil), expiresAt, nil
}

// VerifySession checks a session token, returning ErrUnauthorized for
// anything invalid or expired.
func (s *SessionService) VerifySession(token string) error {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	if _, err := parser.ParseV4Local(s.symmetricKey, token, nil); err != nil {
		return apperrors.ErrUnauthorized.Wrap(err)
	}
	return nil
}
