// Package audit records auth-relevant events to the local database. The
// log is an operator surface (admin console, anomaly review), never part of
// an authorization decision.
package audit

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pawcare-dev/pawcare/internal/models"
)

// Service handles audit log writes and queries
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewService creates a new audit service
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Record persists one auth event. Audit failures are logged and swallowed:
// a broken audit store must never break a login or a guard decision.
func (s *Service) Record(event models.AuthEvent) {
	if err := s.db.Create(&event).Error; err != nil {
		s.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to record auth event")
		return
	}
	s.logger.Debug().Str("type", event.Type).Str("email", event.Email).Msg("Auth event recorded")
}

// Recent returns the newest events, newest first
func (s *Service) Recent(limit int) ([]models.AuthEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []models.AuthEvent
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list auth events: %w", err)
	}
	return events, nil
}

// Prune deletes events older than the cutoff and returns how many went
func (s *Service) Prune(before time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", before).Delete(&models.AuthEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune auth events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
