// Package job runs background work on Asynq, a Redis-backed task queue.
//
// Services enqueue tasks through JobService.Client; the worker server
// started by Start executes the handlers registered in routes.
package job

import (
	"context"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Queues, from most to least urgent.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// DefaultConcurrency is the worker count used when none is configured.
const DefaultConcurrency = 10

// queueWeights splits the workers between queues by ratio: with 10 workers
// roughly 6 serve critical, 3 default and 1 low.
var queueWeights = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

// welcomeSender delivers welcome emails; *email.Client implements it.
type welcomeSender interface {
	SendWelcomeEmail(to, name string) error
}

type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	emails welcomeSender
}

// NewJobService creates the Asynq client and worker server for the Redis
// instance in cfg. InitHandlers must run before Start.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	concurrency := cfg.Redis.JobConcurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency:  concurrency,
			Queues:       queueWeights,
			Logger:       newAsynqLogger(logger),
			ErrorHandler: taskErrorLogger(logger),
		}),
		logger: logger,
	}
}

// taskErrorLogger logs every failed task attempt with its retry budget.
func taskErrorLogger(logger *zerolog.Logger) asynq.ErrorHandler {
	return asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		logger.Error().
			Err(err).
			Str("task", task.Type()).
			Int("retried", retried).
			Int("max_retry", maxRetry).
			Msg("background task failed")
	})
}

func (j *JobService) routes() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start runs the worker server. It returns once the workers are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.routes())
}

// Stop waits for running tasks, shuts the workers down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
