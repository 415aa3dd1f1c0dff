package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	verifier := NewJWTVerifier("secret")
	token, err := verifier.SignDevToken("u1", "u1@example.com")
	require.NoError(t, err)

	identity, err := verifier.VerifyIDToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "u1", Email: "u1@example.com"}, identity)
}

func TestJWTVerifierRejectsOtherSecret(t *testing.T) {
	token, err := NewJWTVerifier("other").SignDevToken("u1", "")
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").VerifyIDToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRequiresSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").VerifyIDToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
