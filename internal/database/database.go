// Package database contains the logic for establishing
// connections to the MongoDB document store.
//
// It handles:
//   - building client options from config (URI, pool size, timeouts)
//   - wiring command logging (slow commands, all commands in "local")
//   - optional New Relic instrumentation (nrmongo)
//   - creating the indexes the repositories rely on
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/placeshare/internal/config"
	loggerConfig "github.com/deppfellow/placeshare/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	PlacesCollection = "places"
	UsersCollection  = "users"
)

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// Database wraps the MongoDB client and the application database.
//
// Client owns the connection pool; DB is the handle repositories use to
// reach their collections.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB with instrumentation.
//
// Behavior:
//   - Build a command monitor that logs slow commands (every command in local)
//   - Chain the New Relic monitor in front of it when APM is enabled
//   - Connect, ping within DatabasePingTimeout and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	threshold := time.Duration(0)
	if cfg.Observability != nil {
		threshold = cfg.Observability.Logging.SlowCommandThreshold
	}

	monitor := newCommandLogger(logger, threshold, cfg.Primary.Env == "local").Monitor()

	// nrmongo wraps the zerolog monitor, so both run on every command.
	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(config.ServiceName).
		SetMaxPoolSize(uint64(cfg.Database.MaxPoolSize)).
		SetConnectTimeout(time.Duration(cfg.Database.Timeout) * time.Second).
		SetServerSelectionTimeout(time.Duration(cfg.Database.Timeout) * time.Second).
		SetMonitor(monitor)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), time.Duration(cfg.Database.Timeout)*time.Second)
	defer cancelConnect()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return database, nil
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-flight operations until ctx
// expires.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection pool")
	return db.Client.Disconnect(ctx)
}

// commandLogger reports driver commands through zerolog.
type commandLogger struct {
	log       *zerolog.Logger
	threshold time.Duration
	verbose   bool
}

func newCommandLogger(logger *zerolog.Logger, threshold time.Duration, verbose bool) *commandLogger {
	return &commandLogger{log: logger, threshold: threshold, verbose: verbose}
}

// Monitor returns the driver hook for this logger.
func (l *commandLogger) Monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started:   l.started,
		Succeeded: l.succeeded,
		Failed:    l.failed,
	}
}

func (l *commandLogger) started(_ context.Context, evt *event.CommandStartedEvent) {
	if !l.verbose {
		return
	}
	l.log.Debug().
		Str("command", evt.CommandName).
		Str("database", evt.DatabaseName).
		Int64("request_id", evt.RequestID).
		Msg("mongo command started")
}

func (l *commandLogger) succeeded(_ context.Context, evt *event.CommandSucceededEvent) {
	slow := l.threshold > 0 && evt.Duration >= l.threshold
	if !slow && !l.verbose {
		return
	}

	logEvent := l.log.Debug()
	if slow {
		logEvent = l.log.Warn()
	}

	logEvent.
		Str("command", evt.CommandName).
		Int64("request_id", evt.RequestID).
		Dur("duration", evt.Duration).
		Bool("slow", slow).
		Msg("mongo command finished")
}

func (l *commandLogger) failed(_ context.Context, evt *event.CommandFailedEvent) {
	l.log.Error().
		Str("command", evt.CommandName).
		Int64("request_id", evt.RequestID).
		Dur("duration", evt.Duration).
		Str("failure", evt.Failure).
		Msg("mongo command failed")
}
