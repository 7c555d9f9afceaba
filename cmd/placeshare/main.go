package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/deppfellow/placeshare/internal/handler"
	"github.com/deppfellow/placeshare/internal/logger"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/deppfellow/placeshare/internal/repository/memory"
	"github.com/deppfellow/placeshare/internal/router"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/service"
)

const DefaultContextTimeout = 30

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize New Relic logger service
	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	var repos *repository.Repositories
	if srv.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.Timeout)*time.Second)
		err := srv.DB.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to ensure database indexes")
		}
		repos = repository.NewRepositories(srv)
	} else {
		repos = memory.NewRepositories()
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
