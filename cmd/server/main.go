package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/config"
	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/handler"
	"github.com/classroom-hub/classroom-backend/internal/logger"
	"github.com/classroom-hub/classroom-backend/internal/middleware"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/classroom-hub/classroom-backend/internal/router"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/classroom-hub/classroom-backend/internal/validator"
	"github.com/classroom-hub/classroom-backend/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Classroom Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	departmentRepo := repository.NewDepartmentRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, sessionRepo, service.NewRedisSessionCache(rdb), log)
	departmentService := service.NewDepartmentService(departmentRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, log)
	classService := service.NewClassService(classRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, log)
	userService := service.NewUserService(userRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	checks := map[string]handler.HealthCheck{
		"database": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.GinMode == gin.ReleaseMode, log),
		Department: handler.NewDepartmentHandler(departmentService, log),
		Subject:    handler.NewSubjectHandler(subjectService, log),
		Class:      handler.NewClassHandler(classService, log),
		User:       handler.NewUserHandler(userService, log),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService, log),
		System:     handler.NewSystemHandler(checks, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	sweeper := worker.NewSessionSweeper(sessionRepo, cfg.SessionSweepInterval, log)
	go sweeper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	// Sign-up and sign-in share one budget of 10 attempts per minute per IP.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer authLimiter.Close()

	r := router.SetupRouter(authService, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests and let in-flight ones finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers before the pool closes under them.
	workerCancel()
	select {
	case <-sweeper.Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("Session sweeper did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
