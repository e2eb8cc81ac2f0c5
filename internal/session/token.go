package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUsable reports whether a bearer token can still back a session.
//
// The token is opaque to this service; signature verification belongs to
// the upstream API. But when the token happens to be a well-formed JWT
// carrying an exp claim, honoring that claim locally avoids sending a user
// into a protected page only to bounce on the first upstream call. Opaque
// tokens and JWTs without exp are always usable.
func TokenUsable(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT, treat as opaque
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
