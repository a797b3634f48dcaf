package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dogtalk/internal/api"
	"dogtalk/internal/config"
	"dogtalk/internal/logger"
	"dogtalk/internal/observability"
	"dogtalk/internal/ratelimit"
	"dogtalk/internal/translate"
	"dogtalk/internal/version"
)

var (
	configFile    = flag.String("config", "", "Path to configuration file")
	exampleConfig = flag.String("write-example-config", "", "Write an example configuration file to this path and exit")
	showVersion   = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetInfo().String())
		return
	}

	if *exampleConfig != "" {
		if err := config.SaveExample(*exampleConfig); err != nil {
			slog.Error("Failed to write example configuration", "error", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	info := version.GetInfo()

	// Initialize structured logging
	log, closer, err := logger.Setup(cfg.Logging, info)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(log)

	// Initialize observability (OpenTelemetry)
	otelProvider, err := observability.Setup(cfg.Metrics, cfg.Observability, info)
	if err != nil {
		slog.Error("Failed to initialize observability", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown observability", "error", err)
		}
	}()

	// Initialize translate service
	translateService := translate.NewServiceFromConfig(cfg.Upstream)

	handlerOpts := []api.HandlersOption{
		api.WithVersionInfo(info),
		api.WithUpstreamEnabled(translateService.UpstreamEnabled()),
	}

	// Initialize per-client rate limiter if enabled
	var rateLimit func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		rlCfg := cfg.RateLimit

		store := ratelimit.NewBucketStore(rlCfg.Shards)
		memLimiter := ratelimit.NewMemoryLimiter(ratelimit.ConfigFromModel(rlCfg), store,
			ratelimit.WithSweepInterval(rlCfg.SweepInterval))
		defer memLimiter.Close()

		// Wrap limiter with instrumentation if metrics are enabled
		var limiter ratelimit.Limiter = memLimiter
		if cfg.Metrics.Enabled {
			instrumented, err := observability.NewInstrumentedLimiter(memLimiter, store)
			if err != nil {
				slog.Error("Failed to create instrumented limiter", "error", err)
				os.Exit(1)
			}
			limiter = instrumented
		}

		identifier := ratelimit.NewClientIdentifier(rlCfg.ForwardedHeader, rlCfg.TrustForwardedHeader)
		rateLimit = ratelimit.Middleware(limiter, identifier)
		handlerOpts = append(handlerOpts, api.WithBucketStore(store))

		slog.Info("Rate limiting enabled",
			"short_window", rlCfg.ShortWindow(),
			"short_limit", rlCfg.ShortLimit,
			"long_window", rlCfg.LongWindow(),
			"long_limit", rlCfg.LongLimit,
			"shards", rlCfg.Shards)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	handlers := api.NewHandlers(translateService, handlerOpts...)

	// Setup routes with middleware
	routeOpts := []api.RouteOption{}
	if cfg.Observability.Tracing.Enabled {
		routeOpts = append(routeOpts, api.WithOTelMiddleware(cfg.Observability.ServiceName))
	}

	router := api.SetupRoutes(handlers, rateLimit, routeOpts...)

	// Start metrics server if enabled
	var metricsServer *observability.MetricsServer
	if cfg.Metrics.Enabled {
		metricsServer = observability.NewMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path, otelProvider)
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "addr", server.Addr, "provider", cfg.Upstream.Provider)

		var err error
		if cfg.Server.TLSEnabled {
			slog.Info("Starting HTTPS server with TLS")
			err = server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			slog.Info("Starting HTTP server")
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Metrics server forced to shutdown", "error", err)
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server shutdown complete")
}
