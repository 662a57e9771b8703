package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestPeekToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})

	info, ok := PeekToken(token)
	require.True(t, ok)
	require.Equal(t, "42", info.Subject)
	require.Equal(t, exp.Unix(), info.ExpiresAt.Unix())
}

func TestPeekTokenWithoutExpiry(t *testing.T) {
	info, ok := PeekToken(signedToken(t, jwt.MapClaims{"sub": "7"}))
	require.True(t, ok)
	require.True(t, info.ExpiresAt.IsZero())
}

func TestPeekTokenOpaque(t *testing.T) {
	_, ok := PeekToken("not-a-jwt")
	require.False(t, ok)

	_, ok = PeekToken("")
	require.False(t, ok)
}
