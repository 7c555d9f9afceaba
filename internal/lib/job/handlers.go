package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/deppfellow/placeshare/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers builds the clients the task handlers send through.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emails = email.NewClient(cfg, logger)
}

// handleWelcomeEmailTask sends the welcome email described by the task.
// A payload that cannot be decoded is never retried.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	logCtx := j.logger.With().Str("task", t.Type()).Str("to", p.To)
	if id, ok := asynq.GetTaskID(ctx); ok {
		logCtx = logCtx.Str("task_id", id)
	}
	logger := logCtx.Logger()

	if err := j.emails.SendWelcomeEmail(p.To, p.Name); err != nil {
		logger.Warn().Err(err).Msg("welcome email not sent")
		return fmt.Errorf("send welcome email: %w", err)
	}

	logger.Info().Msg("welcome email sent")
	return nil
}
