// cmd/eligibility-checker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wellness-eligibility/internal/analytics"
	"wellness-eligibility/internal/attribution"
	"wellness-eligibility/internal/common/config"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/observability"
	"wellness-eligibility/internal/common/scoringapi"
	"wellness-eligibility/internal/common/storage"
	"wellness-eligibility/internal/form"
	"wellness-eligibility/internal/persistence"
	"wellness-eligibility/internal/presenter"
	"wellness-eligibility/internal/scoring"
	"wellness-eligibility/internal/submission"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: configs/config.yaml)")
	query := flag.String("query", "", "landing page query string to capture attribution from, e.g. 'utm_source=linkedin'")
	device := flag.String("device", "", "storage namespace for this device (overrides storage.namespace)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}
	if *device != "" {
		cfg.Storage.Namespace = *device
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting eligibility checker",
		zap.String("version", cfg.App.Version),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("remoteScoring", cfg.ScoringAPI.URL != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		zapLog.Fatal("storage open failed", zap.Error(err))
	}
	defer kv.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := kv.Ping(pingCtx); err != nil {
		zapLog.Warn("storage not reachable, progress will not be saved", zap.Error(err))
	}
	cancel()

	tracker, err := analytics.FromConfig(ctx, cfg.Analytics, log)
	if err != nil {
		zapLog.Fatal("analytics init failed", zap.Error(err))
	}

	attr := attribution.NewStore(kv, cfg.Storage.Namespace, log)
	if *query != "" {
		if _, err := attr.Capture(ctx, *query); err != nil {
			zapLog.Warn("attribution capture failed", zap.Error(err))
		}
	}

	if cfg.Metrics.Address != "" {
		srv := startMetricsServer(cfg.Metrics.Address, kv, zapLog)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	state := form.NewState(persistence.NewStore(kv, cfg.Storage.Namespace, log), tracker, log)
	coordinator := submission.NewCoordinator(
		scoring.NewEngine(log),
		scoringapi.NewClient(cfg.ScoringAPI, log),
		attr,
		tracker,
		obs,
		log,
	)

	p := newPrompter(os.Stdin, os.Stdout, state, coordinator, presenter.SkinFromConfig(cfg.Skin), log)
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLog.Error("session ended with error", zap.Error(err))
	}

	zapLog.Info("Eligibility checker stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func startMetricsServer(addr string, kv storage.KeyValueStore, zapLog *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := kv.Ping(r.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
