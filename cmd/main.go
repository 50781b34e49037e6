package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "vacuum_packaging/docs"
	"vacuum_packaging/internal/config"
	"vacuum_packaging/internal/handlers"
	"vacuum_packaging/internal/logger"
	"vacuum_packaging/internal/metrics"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
	"vacuum_packaging/internal/repository/db"
	"vacuum_packaging/internal/server"
	"vacuum_packaging/internal/service"
)

// feedBuffer is the per-subscriber backlog of the live event stream.
const feedBuffer = 64

// @title                       Vacuum Packaging Controller API
// @version                     1.0
// @description                 Validates packaging configurations and drives the vacuum packaging machine.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml + VACPACK_* env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	repos := repository.NewRepository(conn)

	// observers
	reg, err := metrics.NewRegistry()
	if err != nil {
		log.Fatalw("failed to register metrics", "err", err)
	}
	recorder := service.NewRecorder(repos.StateRepo, repos.EventRepo, log)
	if err := recorder.Restore(context.Background()); err != nil {
		log.Fatalw("failed to restore machine state", "err", err)
	}
	feed := service.NewFeed(feedBuffer)

	ctl := packaging.NewController(
		packaging.WithTimings(cfg.Stages),
		packaging.WithObservers(recorder, reg, feed),
	)

	// wire dependencies
	services := service.NewService(repos, ctl, feed, service.AuthConfig{
		SigningKey: cfg.SigningKey,
		TokenTTL:   cfg.TokenTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithMetrics(reg.Handler()))

	// start HTTP server
	srv := server.New(server.Timeouts{})
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server_started", "port", cfg.Port, "db", cfg.DBPath)

	// graceful shutdown
	waitForShutdown(cfg, srv, services, conn, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops accepting requests,
// cancels the run in flight, waits for it to be recorded and closes the DB.
func waitForShutdown(cfg config.Config, srv *server.Server, services *service.Service, conn *sql.DB, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := services.Drain(ctx); err != nil {
		log.Errorw("packaging run did not drain", "err", err)
	}
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}
