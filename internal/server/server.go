// Package server provides the daemon lifecycle runner: signal handling,
// config loading, observability init, HTTP and gRPC serving with health
// checks, and graceful shutdown in reverse startup order.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/quartzless/softrtc/internal/config"
	"github.com/quartzless/softrtc/internal/domain"
	"github.com/quartzless/softrtc/internal/observability"
)

// Background is a long-running task tied to the server lifecycle. It must
// return promptly once ctx is done.
type Background func(ctx context.Context) error

// Params configures the lifecycle runner.
type Params struct {
	// Name identifies the daemon in logs and health responses.
	Name string

	// PortFromConfig extracts the HTTP port from config.
	PortFromConfig func(cfg *config.Config) int

	// GRPCPortFromConfig extracts the gRPC port from config.
	GRPCPortFromConfig func(cfg *config.Config) int

	// Setup wires the daemon's handlers onto mux and may return a
	// background task to run alongside the servers.
	Setup func(ctx context.Context, cfg *config.Config, logger *slog.Logger, mux *http.ServeMux) (Background, error)
}

// Listeners carries pre-bound listeners for port-0 testing. Nil fields
// are bound from config.
type Listeners struct {
	HTTP net.Listener
	GRPC net.Listener
}

// Run executes the full daemon lifecycle and blocks until shutdown
// completes or a component fails.
func Run(ctx context.Context, p Params, lns Listeners) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: p.Name,
		Environment: cfg.Environment,
	})

	// --- Startup order: tracer -> metrics -> servers ---

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    p.Name,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    p.Name,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	// Health check shutdown coordination via atomic flag.
	var shuttingDown atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if shuttingDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"shutting_down","service":%q}`, p.Name)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":%q}`, p.Name)
	})

	var background Background
	if p.Setup != nil {
		background, err = p.Setup(ctx, cfg, logger, mux)
		if err != nil {
			return fmt.Errorf("setup %s: %w", p.Name, err)
		}
	}

	if lns.HTTP == nil {
		lns.HTTP, err = (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", p.PortFromConfig(cfg)))
		if err != nil {
			return fmt.Errorf("listen http: %w", err)
		}
	}
	if lns.GRPC == nil {
		lns.GRPC, err = (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", p.GRPCPortFromConfig(cfg)))
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	httpServer := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(p.Name, grpc_health_v1.HealthCheckResponse_SERVING)

	// --- Structured concurrency via errgroup ---
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server",
			slog.String("addr", lns.HTTP.Addr().String()),
			slog.String("environment", cfg.Environment),
		)
		if serveErr := httpServer.Serve(lns.HTTP); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("starting gRPC health server",
			slog.String("addr", lns.GRPC.Addr().String()),
		)
		return grpcServer.Serve(lns.GRPC)
	})

	if background != nil {
		g.Go(func() error {
			return background(ctx)
		})
	}

	// Shutdown trigger: waits for context cancellation, then drains in
	// explicit reverse of startup order.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received shutdown signal, starting graceful shutdown")

		// 1. Mark shutting down on both surfaces
		shuttingDown.Store(true)
		healthServer.Shutdown()

		// 2. Drain delay so health probes observe NOT_SERVING first
		time.Sleep(domain.ShutdownDrainDelay)

		// 3. Drain servers (started last, stop first)
		httpCtx, httpCancel := context.WithTimeout(context.Background(), domain.ShutdownHTTPTimeout)
		defer httpCancel()
		if shutdownErr := httpServer.Shutdown(httpCtx); shutdownErr != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", shutdownErr.Error()))
		}
		grpcServer.GracefulStop()

		// 4. Flush OTEL (reverse: metrics first, then tracer)
		otelCtx, otelCancel := context.WithTimeout(context.Background(), domain.ShutdownOTELTimeout)
		defer otelCancel()
		if shutdownErr := metricsProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", shutdownErr.Error()))
		}
		if shutdownErr := tracerProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", shutdownErr.Error()))
		}

		logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}
