package session

import (
	"encoding/json"
	"fmt"
)

// Role is the top-level account role of an authenticated principal
type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
)

// ProviderType is the sub-type of a provider account. Only meaningful when
// the role is RoleProvider; a provider without one is a valid but
// feature-restricted principal.
type ProviderType string

const (
	ProviderVet        ProviderType = "vet"
	ProviderShop       ProviderType = "shop"
	ProviderBabysitter ProviderType = "babysitter"
)

// UserRecord is the authenticated principal as stored in the user_data
// cookie. JSON field names match the cookie wire format written by the
// browser app, capitalized name fields included.
type UserRecord struct {
	Firstname    string       `json:"Firstname"`
	Lastname     string       `json:"Lastname"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	ProviderType ProviderType `json:"providerType,omitempty"`
}

// ParseUserRecord decodes a user_data cookie value. Any decode failure means
// the cookie is corrupt; callers treat that as a corrupt session, not an
// error to surface.
func ParseUserRecord(raw string) (*UserRecord, error) {
	var user UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return &user, nil
}

// Encode serializes the record for cookie storage
func (u *UserRecord) Encode() (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to encode user record: %w", err)
	}
	return string(data), nil
}

// IsProvider reports whether the principal is a provider account
func (u *UserRecord) IsProvider() bool {
	return u.Role == RoleProvider
}
