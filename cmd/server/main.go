package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/config"
	"github.com/guidanceoffice/discipline-backend/internal/database"
	"github.com/guidanceoffice/discipline-backend/internal/handler"
	"github.com/guidanceoffice/discipline-backend/internal/logger"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/router"
	"github.com/guidanceoffice/discipline-backend/internal/service"
	"github.com/guidanceoffice/discipline-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting discipline backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conns, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to data stores")
	}
	defer conns.Close()

	// Repositories
	userRepo := repository.NewUserRepository(conns.Pool)
	studentRepo := repository.NewStudentRepository(conns.Pool)
	offenseRepo := repository.NewOffenseRepository(conns.Pool)
	reportRepo := repository.NewReportRepository(conns.Pool)

	// Services
	authService := service.NewAuthService(cfg, userRepo, conns.Redis)
	studentService := service.NewStudentService(studentRepo)
	offenseService := service.NewOffenseService(offenseRepo, studentRepo)
	reportService := service.NewReportService(reportRepo, offenseRepo, studentRepo, conns.Redis, cfg.ChartCacheTTL, log)

	// Handlers
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Student: handler.NewStudentHandler(studentService),
		Offense: handler.NewOffenseHandler(offenseService),
		Report:  handler.NewReportHandler(reportService),
	}

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
