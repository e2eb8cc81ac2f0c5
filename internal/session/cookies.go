package session

import (
	"net/http"
	"net/url"
	"time"
)

// Cookie names shared by the browser app, the edge gate and the session
// manager. All are cleartext and readable from both contexts.
const (
	TokenCookie = "auth_token"
	UserCookie  = "user_data"
	// LogoutCookie is a short-lived marker written during logout so route
	// guards suppress the redirect-to-login while the navigation to the
	// landing page is still in flight.
	LogoutCookie = "logging_out"
)

// GetCookie returns the URL-decoded value of a request cookie. Absence and
// decode failure both report a missing cookie; this layer never errors.
func GetCookie(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// SetCookie writes a cookie scoped to the whole site. Values are URL-encoded
// to match what the browser app writes with encodeURIComponent.
func SetCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// DeleteCookie overwrites the cookie with an already-expired one
func DeleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteLaxMode,
	})
}
