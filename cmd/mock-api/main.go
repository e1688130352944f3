// Package main runs the in-memory NGO Connect mock service. It dispatches two
// subcommands, serve and version, via a switch on os.Args. Metrics are served on a
// dedicated side-channel port, never on the service listener.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/mockapi"
	"github.com/ngoconnect/ngoconnect/internal/telemetry"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return serve(cfg)
	case "version":
		fmt.Printf("NGO Connect mock API v%s\n", version)
		return nil
	default:
		return fmt.Errorf("unknown command: %s\nAvailable commands: serve, version", command)
	}
}

func serve(cfg *config.Config) error {
	closeLog, err := telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Output)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	adminPassword := cfg.MockAPI.AdminPassword
	if adminPassword == "" {
		adminPassword, err = generatePassword()
		if err != nil {
			return err
		}
		log.Println("")
		log.Println("══════════════════════════════════════════════════════════════════")
		log.Printf("  Generated admin password for %s: %s", cfg.MockAPI.AdminEmail, adminPassword)
		log.Println("  Set NGOCONNECT_MOCK_API_ADMIN_PASSWORD to keep it across restarts.")
		log.Println("══════════════════════════════════════════════════════════════════")
		log.Println("")
	}

	srv, err := mockapi.New(mockapi.Options{
		AdminEmail:    cfg.MockAPI.AdminEmail,
		AdminPassword: adminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create mock service: %w", err)
	}

	if cfg.Telemetry.Metrics.Enabled {
		metricsAddr := fmt.Sprintf(":%d", cfg.Telemetry.Metrics.PrometheusPort)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("starting Prometheus metrics server", "addr", metricsAddr)
			ms := &http.Server{
				Addr:         metricsAddr,
				Handler:      mux,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			if err := ms.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:         cfg.MockAPI.GetAddress(),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("starting mock API", "addr", server.Addr, "base_url", cfg.MockAPI.GetBaseURL())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down mock API")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// generatePassword returns 18 random bytes, base64url-encoded
func generatePassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate admin password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
