package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestTokenUsable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "opaque token",
			token: "a3f9c2e1-opaque-bearer",
			want:  true,
		},
		{
			name:  "jwt without exp",
			token: signedJWT(t, jwt.MapClaims{"sub": "user-1"}),
			want:  true,
		},
		{
			name:  "jwt with future exp",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "jwt with past exp",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "garbage that looks dotted",
			token: "not.a.jwt",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenUsable(tt.token, now); got != tt.want {
				t.Errorf("TokenUsable() = %v, want %v", got, tt.want)
			}
		})
	}
}
