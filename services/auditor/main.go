package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/config"
	"github.com/RuvinSL/seo-auditor/pkg/httpclient"
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/RuvinSL/seo-auditor/pkg/metrics"
	"github.com/RuvinSL/seo-auditor/pkg/pagespeed"
	"github.com/RuvinSL/seo-auditor/services/auditor/core"
	"github.com/RuvinSL/seo-auditor/services/auditor/handlers"
	"github.com/RuvinSL/seo-auditor/services/auditor/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "seo-auditor"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, closer := createLogger(cfg)
	defer closer.Close()

	metricsCollector := metrics.NewPrometheusCollector(serviceName)
	prometheus.MustRegister(metricsCollector.GetCollectors()...)

	fetcher := httpclient.New(cfg.FetchTimeout, log, httpclient.WithUserAgent(cfg.UserAgent))

	// PageSpeed stays nil without a key so the performance analyzer falls back to heuristics
	var (
		pageSpeed interfaces.PageSpeedClient
		health    interfaces.HealthChecker
	)
	if cfg.PageSpeedEnabled() {
		client := pagespeed.New(pagespeed.Config{
			APIKey:            cfg.PageSpeedAPIKey,
			Timeout:           cfg.PageSpeedTimeout,
			RequestsPerSecond: cfg.PageSpeedRPS,
		}, log, metricsCollector)
		pageSpeed, health = client, client
	}

	policy := buildPolicy(cfg)
	auditor := core.NewAuditor(
		fetcher,
		core.NewAnalyzers(pageSpeed, policy.PageSpeedStrategy, log),
		policy,
		log,
		metricsCollector,
	)

	router := newRouter(
		handlers.NewAuditHandler(auditor, log),
		handlers.NewHealthHandler(serviceName, cfg.AppVersion, health),
		log,
		metricsCollector,
	)

	// WriteTimeout covers a full multi-page audit
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting SEO Auditor",
			"service", serviceName,
			"port", cfg.Port,
			"log_level", cfg.LogLevel,
			"log_to_file", cfg.LogToFile,
			"fetch_concurrency", cfg.FetchConcurrency,
			"pagespeed_enabled", cfg.PageSpeedEnabled(),
			"version", cfg.AppVersion,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}

// createLogger logs to stdout, and also to a file when LOG_TO_FILE is set.
// A file logger that cannot be opened falls back to stdout.
func createLogger(cfg config.Config) (interfaces.Logger, io.Closer) {
	level := logger.ParseLevel(cfg.LogLevel)

	if cfg.LogToFile {
		log, closer, err := logger.NewWithFiles(serviceName, level, cfg.LogDir)
		if err == nil {
			return log, closer
		}
		fallback := logger.New(serviceName, level)
		fallback.Warn("File logging unavailable, using stdout", "log_dir", cfg.LogDir, "error", err)
		return fallback, noopCloser{}
	}

	return logger.New(serviceName, level), noopCloser{}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// buildPolicy overlays the configured fetch and PageSpeed settings on the default scoring policy
func buildPolicy(cfg config.Config) core.Policy {
	policy := core.DefaultPolicy()
	policy.FetchConcurrency = cfg.FetchConcurrency
	policy.FetchTimeout = cfg.FetchTimeout
	policy.MaxURLs = cfg.MaxURLs
	policy.PageSpeedStrategy = cfg.PageSpeedStrategy
	return policy
}

func newRouter(
	auditHandler *handlers.AuditHandler,
	healthHandler *handlers.HealthHandler,
	log interfaces.Logger,
	collector interfaces.MetricsCollector,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// root-level routes so a method mismatch answers 405 instead of 404
	router.HandleFunc("/api/v1/audit", auditHandler.Audit).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/v1/audit/stream", auditHandler.Stream).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/v1/audit/export", auditHandler.Export).Methods("POST", "OPTIONS")

	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
	router.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	router.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))

	return router
}
