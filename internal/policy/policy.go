// Package policy is the single authorization decision table shared by the
// edge gate and the per-section route guards. Both contexts read the same
// cookie state and must reach the same conclusion; keeping the table in one
// pure function is what guarantees that.
package policy

import (
	"strings"

	"github.com/pawcare-dev/pawcare/internal/session"
)

// RouteClass classifies a request path
type RouteClass int

const (
	// ClassUnmatched paths carry no authorization requirement here
	ClassUnmatched RouteClass = iota
	// ClassPublicAuth covers the login/register/forgot-password pages
	ClassPublicAuth
	ClassAdmin
	ClassProvider
	ClassUser
)

// String returns the class name, for logs
func (c RouteClass) String() string {
	switch c {
	case ClassPublicAuth:
		return "public_auth"
	case ClassAdmin:
		return "admin"
	case ClassProvider:
		return "provider"
	case ClassUser:
		return "user"
	default:
		return "unmatched"
	}
}

// RequiredRole returns the role a section class demands, and whether it
// demands one at all
func (c RouteClass) RequiredRole() (session.Role, bool) {
	switch c {
	case ClassAdmin:
		return session.RoleAdmin, true
	case ClassProvider:
		return session.RoleProvider, true
	case ClassUser:
		return session.RoleUser, true
	default:
		return "", false
	}
}

// DecisionKind is the outcome of a guard evaluation
type DecisionKind int

const (
	// Render lets the request through to the protected content
	Render DecisionKind = iota
	// Redirect sends the client elsewhere; To carries the target
	Redirect
	// Wait renders a transient placeholder: session still hydrating, or a
	// logout navigation in flight that must not be raced with a redirect
	Wait
)

// Decision is the guard outcome. Exactly one kind is ever active; Render
// and Redirect are mutually exclusive by construction.
type Decision struct {
	Kind DecisionKind
	To   string
}

// Input is the session state a decision is computed from
type Input struct {
	Loading       bool
	LoggingOut    bool
	Authenticated bool
	Role          session.Role
}

// RoleHome returns the home route for a role. Unrecognized roles fall back
// to the consumer home.
func RoleHome(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return "/admin"
	case session.RoleProvider:
		return "/provider/dashboard"
	default:
		return "/user/home"
	}
}

// LoginPath is where unauthenticated requests to protected sections land
const LoginPath = "/login"

// LandingPath is where logout navigates to
const LandingPath = "/"

// Decide computes the guard outcome for a classified path.
//
// The order matters: hydration state first, then the logout grace window,
// then authentication, then role. An authenticated principal on a public
// auth page is bounced to their role home; on a mismatched section they are
// bounced to their own section, never to login.
func Decide(class RouteClass, in Input) Decision {
	if class == ClassUnmatched {
		return Decision{Kind: Render}
	}

	if in.Loading {
		return Decision{Kind: Wait}
	}

	if class == ClassPublicAuth {
		if in.Authenticated && !in.LoggingOut {
			return Decision{Kind: Redirect, To: RoleHome(in.Role)}
		}
		return Decision{Kind: Render}
	}

	// Protected section classes from here on
	if in.LoggingOut {
		// A logout already cleared the session and started a navigation
		// to the landing page; redirecting to login here would race it
		return Decision{Kind: Wait}
	}

	if !in.Authenticated {
		return Decision{Kind: Redirect, To: LoginPath}
	}

	required, _ := class.RequiredRole()
	if in.Role != required {
		return Decision{Kind: Redirect, To: RoleHome(in.Role)}
	}

	return Decision{Kind: Render}
}

// InputFromSession adapts a hydrated session to a decision input
func InputFromSession(s session.Session) Input {
	in := Input{
		LoggingOut:    s.LoggingOut,
		Authenticated: s.IsAuthenticated,
	}
	if s.User != nil {
		in.Role = s.User.Role
	}
	return in
}

// Classify resolves the route class for a request path using longest-prefix
// matching over the route table
func (rt Routes) Classify(path string) RouteClass {
	best := ClassUnmatched
	bestLen := 0

	match := func(prefixes []string, class RouteClass) {
		for _, p := range prefixes {
			if matchesPrefix(path, p) && len(p) > bestLen {
				best = class
				bestLen = len(p)
			}
		}
	}

	match(rt.PublicAuth, ClassPublicAuth)
	match(rt.Admin, ClassAdmin)
	match(rt.Provider, ClassProvider)
	match(rt.User, ClassUser)

	return best
}

// matchesPrefix reports whether path equals prefix or sits beneath it as a
// path segment ("/admin" matches "/admin/users" but not "/administrator")
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix) && len(path) > len(prefix) && path[len(prefix)] == '/'
}
