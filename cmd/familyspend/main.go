package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"familyspend/internal/app"
	"familyspend/internal/cache"
	"familyspend/internal/cli"
	"familyspend/internal/gateway"
	apphttp "familyspend/internal/http"
	applog "familyspend/internal/log"
	"familyspend/internal/render"
	appweb "familyspend/web"
)

const (
	bootstrapTimeout = 30 * time.Second
	shutdownTimeout  = 30 * time.Second
	maxPending       = 64
)

func main() {
	cli.LoadEnvFile()

	// Level is not known before the config is loaded; the bootstrap logger
	// only reports configuration problems.
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	store, initial := cli.InitPrefs(context.Background(), logger, cfg)
	publisher := cli.InitPublisher(logger, cfg)
	sink := cli.InitExportSink(context.Background(), logger, cfg)

	renderer, err := render.New(appweb.TemplatesFS, logger)
	if err != nil {
		logger.Error("Failed to parse templates", applog.FieldError, err)
		os.Exit(1)
	}

	gw := gateway.New(cfg.APIBaseURL,
		gateway.WithTimeout(cfg.GatewayTimeout),
		gateway.WithLogger(logger),
	)

	application := app.New(app.Deps{
		Gateway:   gw,
		Renderer:  renderer,
		Prefs:     store,
		Publisher: publisher,
		Sink:      sink,
		Logger:    logger,
		Initial:   initial,
	})

	bootCtx, bootCancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	if err := application.Bootstrap(bootCtx, render.NewFrame()); err != nil {
		// The page still renders with whatever loaded; the reload command
		// retries the rest.
		logger.Warn("Bootstrap incomplete", applog.FieldError, err, "api", cfg.APIBaseURL)
	}
	bootCancel()

	pending := cache.NewLRUCache[app.Command](maxPending, cfg.ConfirmTTL)
	caches := cache.NewManager(logger)
	caches.Register(pending)
	caches.StartCleanup(cfg.CacheCleanupInterval)

	srv := apphttp.NewServer(apphttp.Config{
		Addr:           cfg.Addr(),
		App:            application,
		Renderer:       renderer,
		Pending:        pending,
		ConfirmTTL:     cfg.ConfirmTTL,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         logger,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.GatewayTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, shutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		caches.Stop()
		application.Close()
		if err := publisher.Close(); err != nil {
			logger.Warn("Publisher close error", applog.FieldError, err)
		}
		if err := store.Close(); err != nil {
			logger.Warn("Preference store close error", applog.FieldError, err)
		}
	})

	logger.Info("Starting familyspend", "addr", cfg.Addr(), "api", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "addr", cfg.Addr())
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
