package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/transactions_app/internal/adapters/amqp"
	"github.com/SscSPs/transactions_app/internal/core/services"
	"github.com/SscSPs/transactions_app/internal/handlers"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/SscSPs/transactions_app/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	_ = viper.BindPFlag("PORT", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	repos, closeRepos, err := repositories.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()
	logger.Info("Record store ready", slog.String("backend", cfg.DataBackend))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(metrics.DefaultNamespace, registry)

	containerOpts := []services.ContainerOption{services.WithMetrics(m)}
	if cfg.AMQP.Enabled() {
		publisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			return fmt.Errorf("failed to connect report publisher: %w", err)
		}
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Warn("Error closing report publisher", slog.String("error", cerr.Error()))
			}
		}()
		containerOpts = append(containerOpts, services.WithPublisher(publisher))
		logger.Info("Publishing completed reports", slog.String("exchange", cfg.AMQP.Exchange), slog.String("routing_key", cfg.AMQP.RoutingKey))
	}

	container, err := services.NewServiceContainer(cfg, repos, containerOpts...)
	if err != nil {
		return err
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics, rate limit)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(m),
		middleware.RateLimit(limiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, registry); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
