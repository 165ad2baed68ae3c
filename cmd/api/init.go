package main

import (
	"context"

	"go-calculator/internal/calculator"
	"go-calculator/internal/config"
	"go-calculator/internal/history"
	"go-calculator/internal/memory"
	"go-calculator/internal/observability"
	"go-calculator/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTLP trace, metric and log pipelines the config
// asks for and registers the calculator's instruments. The returned
// shutdown functions run in reverse order.
func initTelemetry(ctx context.Context, cfg config.Config) ([]shutdownFunc, error) {
	var shutdowns []shutdownFunc

	if cfg.OTLPEnabled {
		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx)
		if err != nil {
			return shutdowns, err
		}
		shutdowns = append(shutdowns, metricShutdown)
	}

	if cfg.OTLPLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return shutdowns, err
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	if err := calculator.InitMetrics(); err != nil {
		return shutdowns, err
	}

	return shutdowns, nil
}

// initHandler opens storage and the stores behind it and builds the
// calculator handler. The returned KV is a *storage.FileKV when
// cfg.StoragePath is set.
func initHandler(cfg config.Config) (*calculator.Handler, storage.KV, error) {
	var kv storage.KV = storage.NewMemoryKV()
	if cfg.StoragePath != "" {
		fkv, err := storage.NewFileKV(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		kv = fkv
	}

	hist, err := history.NewStore(kv)
	if err != nil {
		return nil, nil, err
	}
	mem, err := memory.NewStore(kv)
	if err != nil {
		return nil, nil, err
	}

	sessions := calculator.NewSessions(cfg.SessionLimit, calculator.WithIdleTTL(cfg.SessionIdleTTL))
	h := calculator.NewHandler(sessions, hist, mem, kv)
	if err := calculator.RegisterStoreGauges(prometheus.DefaultRegisterer, h); err != nil {
		return nil, nil, err
	}

	observability.Logger.Info("storage ready",
		zap.String("path", cfg.StoragePath),
		zap.Int("history_entries", hist.Len()),
		zap.Int("memory_slots", mem.Len()),
	)

	return h, kv, nil
}
