package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/personal-blog-api/internal/api"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/scheduler"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/storage"
	"github.com/personal-blog-api/internal/verification"
	"github.com/personal-blog-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back the last migration and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting personal blog API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *migrateDown {
		if err := db.MigrateDown(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		log.Info().Msg("Rolled back one migration")
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	codes := openCodeStore(cfg, log)

	var mailer mail.Mailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.Mail, log)
	} else {
		log.Warn().Msg("MAIL_HOST not set, emails will only be logged")
		mailer = mail.NewLogMailer(log)
	}

	files, err := storage.NewLocal(cfg.Media.ImageDir, cfg.Media.MarkdownDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare media storage")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services, err := service.NewServices(repos, service.Deps{Codes: codes, Mailer: mailer, Files: files}, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	// Start the daily reminder
	reminder := scheduler.NewReminder(mailer, cfg.Reminder, cfg.Mail.SiteName, log)
	if cfg.Mail.Enabled() {
		if err := reminder.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start activity reminder")
		}
	} else {
		log.Info().Msg("Activity reminder disabled, mail is not configured")
	}

	// Initialize router
	router := api.NewRouter(services, db, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	reminder.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// openCodeStore connects to redis when configured and falls back to the
// in-process store otherwise
func openCodeStore(cfg *config.Config, log zerolog.Logger) verification.Store {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, verification codes are kept in memory")
		return verification.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := verification.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, verification codes are kept in memory")
		return verification.NewMemoryStore()
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
	return verification.NewRedisStore(client)
}
