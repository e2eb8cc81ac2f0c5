package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Routes is the path classification table. The decision logic is fixed; the
// paths it applies to are data, overridable per deployment.
type Routes struct {
	PublicAuth []string `yaml:"public_auth"`
	Admin      []string `yaml:"admin"`
	Provider   []string `yaml:"provider"`
	User       []string `yaml:"user"`
}

// DefaultRoutes returns the classification table for the standard app layout
func DefaultRoutes() Routes {
	return Routes{
		PublicAuth: []string{"/login", "/register", "/forgot-password"},
		Admin:      []string{"/admin"},
		Provider:   []string{"/provider"},
		User:       []string{"/user"},
	}
}

// LoadRoutes reads a YAML route table, falling back to the defaults when no
// file is configured. Sections omitted from the file keep their defaults.
func LoadRoutes(path string) (Routes, error) {
	routes := DefaultRoutes()
	if path == "" {
		return routes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Routes{}, fmt.Errorf("failed to read routes file: %w", err)
	}

	var overrides Routes
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Routes{}, fmt.Errorf("failed to parse routes file: %w", err)
	}

	if len(overrides.PublicAuth) > 0 {
		routes.PublicAuth = overrides.PublicAuth
	}
	if len(overrides.Admin) > 0 {
		routes.Admin = overrides.Admin
	}
	if len(overrides.Provider) > 0 {
		routes.Provider = overrides.Provider
	}
	if len(overrides.User) > 0 {
		routes.User = overrides.User
	}

	return routes, nil
}
