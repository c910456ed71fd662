package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.Issue("alice")
	require.NoError(t, err)

	subject, err := manager.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.IssueWithTTL("alice", -time.Minute)
	require.NoError(t, err)

	_, err = manager.Subject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Subject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := manager.Subject(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenManager_UnsignedRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Subject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_MissingExpiryRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	})
	token, err := eternal.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.Subject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
