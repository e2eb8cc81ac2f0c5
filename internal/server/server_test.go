package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare-dev/pawcare/internal/config"
	"github.com/pawcare-dev/pawcare/internal/server"
	"github.com/pawcare-dev/pawcare/internal/session"
)

// stubUpstream answers like the PawCare API: one valid credential pair, and
// a generic success envelope for every section data call
func stubUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email != "ada@example.com" || req.Password != "hunter22" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid email or password"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"token": "tok-789",
					"user": map[string]any{
						"Firstname": "Ada",
						"Lastname":  "Lovelace",
						"email":     "ada@example.com",
						"role":      "user",
					},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	upstream := stubUpstream(t)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{
			ListenAddr:    ":0",
			AllowedOrigin: "http://localhost:3000",
		},
		Upstream: config.UpstreamConfig{
			BaseURL: upstream.URL,
			Timeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{URL: ":memory:"},
		Auth: config.AuthConfig{
			TokenMaxAge: 30 * 24 * time.Hour,
			LogoutGrace: 2 * time.Second,
		},
		Audit: config.AuditConfig{RetentionDays: 90},
	}

	srv, err := server.New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return srv
}

func userCookies(t *testing.T, token string, user session.UserRecord) []*http.Cookie {
	t.Helper()
	encoded, err := json.Marshal(user)
	require.NoError(t, err)
	return []*http.Cookie{
		{Name: session.TokenCookie, Value: url.QueryEscape(token)},
		{Name: session.UserCookie, Value: url.QueryEscape(string(encoded))},
	}
}

func doRequest(srv *server.Server, method, path string, cookies []*http.Cookie, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestEdgeGateRedirectsAnonymousVisitors(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/user/bookings", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSectionRoleMismatchRedirectsToOwnHome(t *testing.T) {
	srv := newTestServer(t)
	cookies := userCookies(t, "tok-1", session.UserRecord{
		Firstname: "Bo", Email: "bo@example.com",
		Role: session.RoleProvider, ProviderType: session.ProviderShop,
	})

	w := doRequest(srv, http.MethodGet, "/admin", cookies, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/provider/dashboard", w.Header().Get("Location"))
}

func TestProviderReachesOwnDashboard(t *testing.T) {
	srv := newTestServer(t)
	cookies := userCookies(t, "tok-1", session.UserRecord{
		Email: "bo@example.com", Role: session.RoleProvider, ProviderType: session.ProviderShop,
	})

	w := doRequest(srv, http.MethodGet, "/provider/dashboard", cookies, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticatedAdminBouncedOffLoginPage(t *testing.T) {
	srv := newTestServer(t)
	cookies := userCookies(t, "tok-1", session.UserRecord{
		Email: "root@example.com", Role: session.RoleAdmin,
	})

	w := doRequest(srv, http.MethodGet, "/login", cookies, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestCorruptSessionHealsAndRedirects(t *testing.T) {
	srv := newTestServer(t)
	cookies := []*http.Cookie{
		{Name: session.TokenCookie, Value: "tok-1"},
		{Name: session.UserCookie, Value: url.QueryEscape(`{"Firstname":"Ada"`)},
	}

	w := doRequest(srv, http.MethodGet, "/user/home", cookies, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	deleted := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted[c.Name] = true
		}
	}
	assert.True(t, deleted[session.TokenCookie], "auth_token should be cleared")
	assert.True(t, deleted[session.UserCookie], "user_data should be cleared")
}

func TestLoginEstablishesSession(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "hunter22"})

	w := doRequest(srv, http.MethodPost, "/api/auth/login", nil, body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "/user/home", resp.Data.Redirect)

	set := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		set[c.Name] = c
	}
	require.Contains(t, set, session.TokenCookie)
	require.Contains(t, set, session.UserCookie)
	assert.Positive(t, set[session.TokenCookie].MaxAge)

	// The user_data cookie round-trips to the same principal
	raw, err := url.QueryUnescape(set[session.UserCookie].Value)
	require.NoError(t, err)
	user, err := session.ParseUserRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, session.RoleUser, user.Role)
}

func TestLoginRejectedUpstream(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "wrong"})

	w := doRequest(srv, http.MethodPost, "/api/auth/login", nil, body)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Header(), "Set-Cookie")
}

func TestLogoutClearsCookiesAndOpensGraceWindow(t *testing.T) {
	srv := newTestServer(t)
	cookies := userCookies(t, "tok-1", session.UserRecord{
		Email: "ada@example.com", Role: session.RoleUser,
	})

	w := doRequest(srv, http.MethodPost, "/api/auth/logout", cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var marker *http.Cookie
	deleted := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted[c.Name] = true
		}
		if c.Name == session.LogoutCookie && c.MaxAge > 0 {
			marker = c
		}
	}
	assert.True(t, deleted[session.TokenCookie])
	assert.True(t, deleted[session.UserCookie])
	require.NotNil(t, marker, "logout should write the grace marker")

	// During the grace window a protected page answers with a placeholder
	// instead of racing the in-flight navigation with a login redirect
	w2 := doRequest(srv, http.MethodGet, "/user/home", []*http.Cookie{marker}, nil)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "Redirecting")
}

func TestCapabilityGateOnProviderFeatures(t *testing.T) {
	srv := newTestServer(t)

	vet := userCookies(t, "tok-1", session.UserRecord{
		Email: "vet@example.com", Role: session.RoleProvider, ProviderType: session.ProviderVet,
	})
	shop := userCookies(t, "tok-2", session.UserRecord{
		Email: "shop@example.com", Role: session.RoleProvider, ProviderType: session.ProviderShop,
	})

	// Vets have no inventory; shops do
	assert.Equal(t, http.StatusForbidden, doRequest(srv, http.MethodGet, "/provider/inventory", vet, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/provider/inventory", shop, nil).Code)

	// Shops have no bookable services; vets do
	assert.Equal(t, http.StatusForbidden, doRequest(srv, http.MethodGet, "/provider/services", shop, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/provider/services", vet, nil).Code)

	// Vet-only features
	assert.Equal(t, http.StatusForbidden, doRequest(srv, http.MethodGet, "/provider/vet/records", shop, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/provider/vet/records", vet, nil).Code)
}

func TestProviderNavResolvesCapabilities(t *testing.T) {
	srv := newTestServer(t)
	shop := userCookies(t, "tok-2", session.UserRecord{
		Email: "shop@example.com", Role: session.RoleProvider, ProviderType: session.ProviderShop,
	})

	w := doRequest(srv, http.MethodGet, "/provider/nav", shop, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ManageServices  bool   `json:"manage_services"`
			ManageInventory bool   `json:"manage_inventory"`
			Label           string `json:"label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.ManageServices)
	assert.True(t, resp.Data.ManageInventory)
	assert.Equal(t, "Shop Owner", resp.Data.Label)
}

func TestCurrentUserRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(srv, http.MethodGet, "/api/auth/me", nil, nil).Code)

	cookies := userCookies(t, "tok-1", session.UserRecord{
		Email: "ada@example.com", Role: session.RoleUser,
	})
	w := doRequest(srv, http.MethodGet, "/api/auth/me", cookies, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")
}

func TestAdminAuditLogRecordsDeniedAccess(t *testing.T) {
	srv := newTestServer(t)

	provider := userCookies(t, "tok-1", session.UserRecord{
		Email: "bo@example.com", Role: session.RoleProvider, ProviderType: session.ProviderShop,
	})
	doRequest(srv, http.MethodGet, "/admin", provider, nil)

	admin := userCookies(t, "tok-2", session.UserRecord{
		Email: "root@example.com", Role: session.RoleAdmin,
	})
	w := doRequest(srv, http.MethodGet, "/admin/audit", admin, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_denied")
	assert.Contains(t, w.Body.String(), "bo@example.com")
}
