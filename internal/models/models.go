package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Auth event types recorded in the audit log
const (
	EventLogin         = "login"
	EventLoginFailed   = "login_failed"
	EventLogout        = "logout"
	EventSessionHealed = "session_healed"
	EventAccessDenied  = "access_denied"
)

// AuthEvent is one entry in the auth audit log: logins, logouts, corrupt
// session self-heals and denied section access
type AuthEvent struct {
	BaseModel
	Type     string `json:"type" gorm:"not null;index"`
	Email    string `json:"email" gorm:"index"`
	Role     string `json:"role"`
	Path     string `json:"path"`
	ClientIP string `json:"client_ip"`
	Detail   string `json:"detail"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&AuthEvent{})
}
