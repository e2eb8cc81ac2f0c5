package session

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Session is the per-request belief about "who is logged in", hydrated from
// the request cookies by Manager.CheckAuth.
type Session struct {
	Token           string
	User            *UserRecord
	IsAuthenticated bool
	LoggingOut      bool
	// Healed is set when CheckAuth found a token with missing or
	// unparseable user data and self-healed by clearing both cookies.
	Healed bool
}

// Manager owns the session cookie pair and the transitions over it. It is
// an explicit, injectable object so tests can construct isolated instances.
type Manager struct {
	tokenMaxAge time.Duration
	logoutGrace time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewManager creates a session manager
func NewManager(tokenMaxAge, logoutGrace time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		tokenMaxAge: tokenMaxAge,
		logoutGrace: logoutGrace,
		now:         time.Now,
		log:         log,
	}
}

// CheckAuth derives the session from the request cookies. Every exit path is
// fail-closed: nothing here can produce an authenticated session without
// both a usable token and a parseable user record.
//
// When direct is non-nil (post-login and post-profile-update fast path) the
// supplied record is trusted unconditionally and no cookie read occurs; the
// caller is responsible for having already written the cookie pair.
func (m *Manager) CheckAuth(w http.ResponseWriter, r *http.Request, direct *UserRecord) Session {
	loggingOut := m.LoggingOut(r)

	if direct != nil {
		return Session{
			User:            direct,
			IsAuthenticated: true,
			LoggingOut:      loggingOut,
		}
	}

	token, ok := GetCookie(r, TokenCookie)
	if !ok {
		// Ordinary logged-out state, not an error
		return Session{LoggingOut: loggingOut}
	}

	if !TokenUsable(token, m.now()) {
		// Expired credential is treated the same as a missing one
		return Session{LoggingOut: loggingOut}
	}

	raw, ok := GetCookie(r, UserCookie)
	if !ok {
		return m.heal(w, loggingOut)
	}

	user, err := ParseUserRecord(raw)
	if err != nil {
		return m.heal(w, loggingOut)
	}

	return Session{
		Token:           token,
		User:            user,
		IsAuthenticated: true,
		LoggingOut:      loggingOut,
	}
}

// heal clears a corrupt cookie pair. A token without parseable user data
// must never surface as authenticated, and the user is simply treated as
// logged out rather than shown an error.
func (m *Manager) heal(w http.ResponseWriter, loggingOut bool) Session {
	DeleteCookie(w, TokenCookie)
	DeleteCookie(w, UserCookie)
	m.log.Warn().Msg("Corrupt session cookies cleared")
	return Session{LoggingOut: loggingOut, Healed: true}
}

// Establish writes the cookie pair for a fresh login or profile update.
// Callers pass the returned record straight to CheckAuth's direct-user fast
// path so the write and the re-hydration act as one logical unit.
func (m *Manager) Establish(w http.ResponseWriter, token string, user *UserRecord) error {
	encoded, err := user.Encode()
	if err != nil {
		return err
	}
	SetCookie(w, TokenCookie, token, m.tokenMaxAge)
	SetCookie(w, UserCookie, encoded, m.tokenMaxAge)
	return nil
}

// Logout clears the cookie pair and opens the logout grace window. Safe to
// call repeatedly; a second logout while the marker is live is a harmless
// repeat of the same writes.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	// Marker first, so any guard evaluating this response's cookies sees
	// the transition before it sees the missing credentials
	SetCookie(w, LogoutCookie, "1", m.logoutGrace)
	DeleteCookie(w, TokenCookie)
	DeleteCookie(w, UserCookie)
}

// LoggingOut reports whether the request falls inside a logout grace window
func (m *Manager) LoggingOut(r *http.Request) bool {
	_, ok := GetCookie(r, LogoutCookie)
	return ok
}
