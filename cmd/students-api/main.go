// main is the entry point of the student registry API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus an optional .env)
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Build metrics, the CPF verifier, the validation pipeline and services
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives, then shut down
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aanand-mishra/student-registry/internal/auth"
	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/http/router"
	"github.com/aanand-mishra/student-registry/internal/metrics"
	"github.com/aanand-mishra/student-registry/internal/service"
	"github.com/aanand-mishra/student-registry/internal/storage/sqlite"
	"github.com/aanand-mishra/student-registry/internal/validation"
	"github.com/aanand-mishra/student-registry/internal/verification"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Domain wiring ──────────────────────────────────────────────────
	// One registry backs both the counters and the /metrics endpoint.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	verifier := verification.New(verification.Config{
		Enabled: cfg.ExternalVerification.Enabled,
		BaseURL: cfg.ExternalVerification.BaseURL,
		Timeout: cfg.ExternalVerification.Timeout,
	}, log)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	pipeline := validation.New(storage, verifier, m, log)

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	handler := router.New(router.Deps{
		Students: service.NewStudentService(storage, pipeline, m, log),
		Auth:     service.NewAuthService(storage, tokens, log),
		Tokens:   tokens,
		Validate: validation.NewValidator(),
		Gatherer: reg,
		Log:      log,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,

		// Timeouts guard against slow clients.
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever, so it runs in its own goroutine and
	// main stays free to wait for the shutdown signal.
	go func() {
		log.Info("server started", slog.String("address", cfg.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That is the normal exit, not an error.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// In-flight requests get cfg.ShutdownTimeout to finish.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
