package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const csrfType = "csrf"

var ErrCSRFSessionMismatch = errors.New("csrf token issued for another session")

type csrfClaims struct {
	Type    string `json:"typ"`
	Session string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// CSRFIssuer signs short-lived anti-forgery tokens. A token issued with a
// session id only verifies for that session; one issued without is valid
// for anonymous callers only.
type CSRFIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRFIssuer(secret string, ttl time.Duration) *CSRFIssuer {
	return &CSRFIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *CSRFIssuer) Issue(sessionID string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := &csrfClaims{
		Type:    csrfType,
		Session: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (i *CSRFIssuer) Verify(raw, sessionID string) error {
	if raw == "" {
		return ErrTokenMissing
	}
	claims := &csrfClaims{}
	if err := parseHS256(raw, claims, i.secret, i.now); err != nil {
		return err
	}
	if claims.Type != csrfType {
		return fmt.Errorf("%w: not a csrf token", ErrTokenInvalid)
	}
	if claims.Session != sessionID {
		return ErrCSRFSessionMismatch
	}
	return nil
}
