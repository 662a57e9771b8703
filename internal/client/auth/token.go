package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of a bearer token without the
// server's key. Display-only: session validity is always decided by the
// backend's validate endpoint, never by these claims.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekToken parses the token without verifying its signature and extracts
// the display claims. Returns false for opaque (non-JWT) tokens.
func PeekToken(token string) (TokenInfo, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}
