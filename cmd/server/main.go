package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/config"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
	"github.com/mmynk/spendwise/internal/storage"
	"github.com/mmynk/spendwise/internal/storage/sqlite"
	"github.com/mmynk/spendwise/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	store := storage.WithTimeout(db, cfg.StoreTimeout)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPEnabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		publisher = amqpPublisher
		logger.Info("Publishing activity events", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	}
	defer publisher.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	api := service.NewAPI(store, authenticator, jwtManager, publisher, service.Options{
		UniqueBudgetPerPeriod: cfg.BudgetUniquePerPeriod,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := setupRouter(api, jwtManager, registry, cfg.CORSAllowedOrigin, logger)

	server := &http.Server{
		Addr: cfg.Addr(),
		// h2c serves HTTP/2 without TLS for clients that ask for it.
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// setupRouter registers the API, health and metrics routes and wraps them
// with the middleware chain.
func setupRouter(api *service.API, jwtManager *auth.JWTManager, registry *prometheus.Registry, corsOrigin string, logger *slog.Logger) http.Handler {
	metrics := middleware.NewMetrics(registry)

	mux := http.NewServeMux()
	api.Register(mux, middleware.RequireAuth(jwtManager))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	handler = middleware.CORS(corsOrigin)(handler)
	handler = middleware.Logging(logger)(handler)
	return metrics.Middleware(handler)
}
