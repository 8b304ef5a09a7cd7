package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("testpassword123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpassword123", hash)

	assert.NoError(t, CheckPassword(hash, "testpassword123"))
	assert.ErrorIs(t, CheckPassword(hash, "wrongpassword"), ErrPasswordMismatch)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)

	raw, exp, err := issuer.Issue(42, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_WrongSecretAndGarbage(t *testing.T) {
	raw, _, err := NewTokenIssuer("one", time.Hour).Issue(1, "user")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewTokenIssuer("one", time.Hour).Parse("invalid_token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewTokenIssuer("one", time.Hour).Parse("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestCSRF_ValidWithinWindow(t *testing.T) {
	csrf := NewCSRFIssuer("csrf-secret", time.Hour)

	raw, _, err := csrf.Issue("session-1")
	require.NoError(t, err)

	assert.NoError(t, csrf.Verify(raw, "session-1"))
}

func TestCSRF_Expired(t *testing.T) {
	csrf := NewCSRFIssuer("csrf-secret", time.Hour)
	csrf.now = func() time.Time { return time.Now().Add(-61 * time.Minute) }
	raw, _, err := csrf.Issue("")
	require.NoError(t, err)

	csrf.now = time.Now
	assert.ErrorIs(t, csrf.Verify(raw, ""), ErrTokenExpired)
}

func TestCSRF_WrongSecret(t *testing.T) {
	raw, _, err := NewCSRFIssuer("csrf-secret", time.Hour).Issue("")
	require.NoError(t, err)

	assert.ErrorIs(t, NewCSRFIssuer("other-secret", time.Hour).Verify(raw, ""), ErrTokenInvalid)
}

func TestCSRF_BoundToSession(t *testing.T) {
	csrf := NewCSRFIssuer("csrf-secret", time.Hour)
	raw, _, err := csrf.Issue("session-1")
	require.NoError(t, err)

	assert.ErrorIs(t, csrf.Verify(raw, "session-2"), ErrCSRFSessionMismatch)
	assert.ErrorIs(t, csrf.Verify(raw, ""), ErrCSRFSessionMismatch)
}

func TestCSRF_RejectsSessionToken(t *testing.T) {
	raw, _, err := NewTokenIssuer("shared", time.Hour).Issue(1, "user")
	require.NoError(t, err)

	assert.ErrorIs(t, NewCSRFIssuer("shared", time.Hour).Verify(raw, ""), ErrTokenInvalid)
}

func TestCSRF_Missing(t *testing.T) {
	assert.ErrorIs(t, NewCSRFIssuer("csrf-secret", time.Hour).Verify("", ""), ErrTokenMissing)
}

func TestHMAC(t *testing.T) {
	sig := SignHMAC("whsec", []byte("12:completed:REF-1"))

	assert.True(t, VerifyHMAC("whsec", []byte("12:completed:REF-1"), sig))
	assert.False(t, VerifyHMAC("whsec", []byte("12:failed:REF-1"), sig))
	assert.False(t, VerifyHMAC("other", []byte("12:completed:REF-1"), sig))
}
