package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawcare-dev/pawcare/internal/models"
	"github.com/pawcare-dev/pawcare/internal/policy"
	"github.com/pawcare-dev/pawcare/internal/session"
)

const sessionKey = "session"

func setSession(c *gin.Context, sess session.Session) {
	c.Set(sessionKey, sess)
}

// GetSession returns the hydrated session for a request
func GetSession(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}

// edgeGate evaluates the authorization policy against the raw request
// cookies, before any handler code runs. It shares the decision table with
// the section guards but reads its inputs independently: no hydrated
// session exists yet at this point, and none is assumed.
func (s *Server) edgeGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		class := s.routes.Classify(c.Request.URL.Path)
		if class == policy.ClassUnmatched {
			c.Next()
			return
		}

		in := policy.Input{
			LoggingOut: s.sessions.LoggingOut(c.Request),
		}
		var email string
		if token, ok := session.GetCookie(c.Request, session.TokenCookie); ok && session.TokenUsable(token, time.Now()) {
			if raw, ok := session.GetCookie(c.Request, session.UserCookie); ok {
				if user, err := session.ParseUserRecord(raw); err == nil {
					in.Authenticated = true
					in.Role = user.Role
					email = user.Email
				}
			}
		}

		decision := policy.Decide(class, in)
		if decision.Kind != policy.Render {
			s.logger.Debug().
				Str("path", c.Request.URL.Path).
				Str("class", class.String()).
				Msg("Edge gate intercepted request")
		}
		if decision.Kind == policy.Redirect && in.Authenticated && class != policy.ClassPublicAuth {
			s.audits.Record(models.AuthEvent{
				Type:     models.EventAccessDenied,
				Email:    email,
				Role:     string(in.Role),
				Path:     c.Request.URL.Path,
				ClientIP: c.ClientIP(),
				Detail:   "section requires " + class.String(),
			})
		}
		s.applyDecision(c, decision)
	}
}

// hydrateSession derives the session once per request and stores it in the
// request context. Corrupt cookie pairs are healed here (both cookies
// cleared on the response) and recorded to the audit log.
func (s *Server) hydrateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := s.sessions.CheckAuth(c.Writer, c.Request, nil)
		if sess.Healed {
			s.audits.Record(models.AuthEvent{
				Type:     models.EventSessionHealed,
				Path:     c.Request.URL.Path,
				ClientIP: c.ClientIP(),
			})
		}
		setSession(c, sess)
		c.Next()
	}
}

// sectionGuard protects one app section with a required role. Pages under
// the section inherit the guard without carrying auth logic themselves.
func (s *Server) sectionGuard(class policy.RouteClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)
		decision := policy.Decide(class, policy.InputFromSession(sess))

		if decision.Kind == policy.Redirect && sess.IsAuthenticated {
			// Authenticated but wrong role: silent redirect to their own
			// home, recorded for the admin console
			s.audits.Record(models.AuthEvent{
				Type:     models.EventAccessDenied,
				Email:    sess.User.Email,
				Role:     string(sess.User.Role),
				Path:     c.Request.URL.Path,
				ClientIP: c.ClientIP(),
				Detail:   "section requires " + class.String(),
			})
		}

		s.applyDecision(c, decision)
	}
}

// authPagesGuard is the inverse guard on login/register/forgot-password:
// authenticated visitors are sent to their role home instead
func (s *Server) authPagesGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)
		s.applyDecision(c, policy.Decide(policy.ClassPublicAuth, policy.InputFromSession(sess)))
	}
}

// requireAuthenticated admits any authenticated principal, regardless of role
func (s *Server) requireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)
		if !sess.IsAuthenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireCapability gates a provider feature group on the session's
// provider sub-type. The section guard has already established the role;
// this only checks the capability.
func (s *Server) requireCapability(check func(session.ProviderType) bool, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)
		if sess.User == nil || !check(sess.User.ProviderType) {
			if sess.User != nil {
				s.audits.Record(models.AuthEvent{
					Type:     models.EventAccessDenied,
					Email:    sess.User.Email,
					Role:     string(sess.User.Role),
					Path:     c.Request.URL.Path,
					ClientIP: c.ClientIP(),
					Detail:   "provider type lacks " + feature,
				})
			}
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Feature not available for this provider type"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// applyDecision turns a policy decision into a response. Navigation (GET)
// requests get redirects the way a browser expects; API calls get JSON
// statuses. Exactly one outcome is ever issued per request.
func (s *Server) applyDecision(c *gin.Context, d policy.Decision) {
	switch d.Kind {
	case policy.Render:
		c.Next()
	case policy.Redirect:
		if c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusFound, d.To)
		} else if d.To == policy.LoginPath {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized for this section"})
		}
		c.Abort()
	case policy.Wait:
		// A logout navigation is in flight; answer with a placeholder
		// rather than racing it with another redirect
		if c.Request.Method == http.MethodGet {
			c.String(http.StatusOK, "Redirecting...")
		} else {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Session transition in progress"})
		}
		c.Abort()
	}
}
