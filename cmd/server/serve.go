package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	config "github.com/avatarctic/qrcode-service/go/configs"
	"github.com/avatarctic/qrcode-service/go/internal/application/services"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/httpserver"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/repositories"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := newLogger(cfg.Log)
	logger.Info("Starting QR code service...")

	a, err := newApp(parent, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize cache")
		return err
	}
	defer a.close()

	server := a.httpServer()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Server stopped with error")
		return err
	}
	logger.Info("Server exited")
	return nil
}

// httpServer builds the HTTP layer on top of a, adding rate limiting when enabled.
func (a *app) httpServer() *httpserver.Server {
	cfg := a.cfg
	var rateLimiter ports.RateLimiterService
	if cfg.RateLimit.Enabled {
		rateLimiter = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(a.rateLimitClient()),
			&services.RateLimiterConfig{
				RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         cfg.RateLimit.KeyPrefix,
			},
			a.logger,
		)
	}

	return httpserver.NewServer(&httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, a.logger, httpserver.ServerDeps{
		QRCodeService:      a.qrCodeService(),
		RateLimiterService: rateLimiter,
		HealthCheckers:     a.checkers,
	})
}
