package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TypeAuditPrune = "audit:prune"
)

// AuditPrunePayload carries the retention window for a prune run
type AuditPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewAuditPruneTask creates a task that prunes auth events older than the
// retention window
func NewAuditPruneTask(retentionDays int) (*asynq.Task, error) {
	payload, err := json.Marshal(AuditPrunePayload{
		RetentionDays: retentionDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeAuditPrune, payload), nil
}

// ParseAuditPrunePayload parses the payload from an Asynq task
func ParseAuditPrunePayload(task *asynq.Task) (AuditPrunePayload, error) {
	var payload AuditPrunePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}
