// Package cli provides common CLI initialization utilities for
// cmd/familyspend: logging, configuration, the preference store, the
// optional publishers and signal handling.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"familyspend/internal/config"
	"familyspend/internal/core"
	"familyspend/internal/events"
	"familyspend/internal/export"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/prefs"
)

// SetupLogger initializes structured logging at the given level.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	lvl := applog.ParseLevel(level)
	logger := applog.NewText(os.Stdout, lvl, applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitPrefs opens the sqlite preference store and reads the stored theme and
// language, falling back to the configured defaults. A store that cannot be
// read is not fatal: the defaults are used.
// Exits the process when the store cannot be opened.
func InitPrefs(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*prefs.SQLiteStore, prefs.Preferences) {
	store, err := prefs.NewSQLiteStore(cfg.PrefsDBPath)
	if err != nil {
		logger.Error("Failed to initialize preference store", applog.FieldError, err, "path", cfg.PrefsDBPath)
		os.Exit(1)
	}

	def := prefs.Preferences{
		Theme:    core.ParseTheme(cfg.DefaultTheme),
		Language: i18n.ParseLanguage(cfg.DefaultLanguage),
	}
	p, err := prefs.Load(ctx, store, def)
	if err != nil {
		logger.Warn("Failed to read preferences, using defaults", applog.FieldError, err)
	}
	logger.Info("Preferences loaded", "theme", p.Theme, "language", p.Language)
	return store, p
}

// InitPublisher returns the AMQP mutation publisher when AMQP_URL is set and
// a no-op publisher otherwise. The AMQP connection is opened lazily.
func InitPublisher(logger *applog.Logger, cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled() {
		logger.Info("Mutation events disabled")
		return events.Noop{}
	}
	logger.Info("Mutation events enabled", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
}

// InitExportSink returns the Google Sheets mirror for CSV exports when a
// spreadsheet is configured. A sink that cannot be built is logged and
// replaced by a no-op, since the mirror never blocks an export.
func InitExportSink(ctx context.Context, logger *applog.Logger, cfg *config.Config) export.Sink {
	if !cfg.ExportMirrorEnabled() {
		return export.Noop{}
	}
	sink, err := export.NewSheetsSink(ctx, export.SheetsConfig{
		SpreadsheetID:   cfg.ExportSpreadsheetID,
		SheetName:       cfg.ExportSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Error("Failed to initialize export mirror, continuing without it", applog.FieldError, err)
		return export.Noop{}
	}
	logger.Info("Export mirror enabled", "sheet", cfg.ExportSheetName)
	return sink
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when cleanup is complete.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup(shutdownCtx)
			}
			close(finished)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-finished:
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup is done.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
