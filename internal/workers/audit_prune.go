package workers

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pawcare-dev/pawcare/internal/audit"
	"github.com/pawcare-dev/pawcare/internal/tasks"
)

// HandleAuditPrune deletes auth events older than the retention window
func HandleAuditPrune(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	payload, err := tasks.ParseAuditPrunePayload(t)
	if err != nil {
		return err
	}

	retention := payload.RetentionDays
	if retention <= 0 {
		retention = 90
	}
	cutoff := time.Now().AddDate(0, 0, -retention)

	pruned, err := audit.NewService(db, logger).Prune(cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("Audit prune failed")
		return err
	}

	logger.Info().
		Int64("pruned", pruned).
		Time("cutoff", cutoff).
		Msg("Audit prune complete")
	return nil
}

// StartPruneScheduler enqueues a prune task on the configured cron schedule.
// Blocks; run in a goroutine.
func StartPruneScheduler(client *asynq.Client, schedule string, retentionDays int, logger zerolog.Logger) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		logger.Error().Err(err).Str("schedule", schedule).Msg("Invalid prune schedule - audit pruning disabled")
		return
	}

	for {
		next := sched.Next(time.Now())
		logger.Debug().Time("next_prune_at", next).Msg("Audit prune scheduled")
		time.Sleep(time.Until(next))

		task, err := tasks.NewAuditPruneTask(retentionDays)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to build audit prune task")
			continue
		}
		if _, err := client.Enqueue(task, asynq.Queue("low")); err != nil {
			logger.Error().Err(err).Msg("Failed to enqueue audit prune task")
		}
	}
}
