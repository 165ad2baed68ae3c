package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-calculator/internal/config"
	"go-calculator/internal/observability"
	"go-calculator/internal/server"
	"go-calculator/internal/storage"

	"go.uber.org/zap"
)

func main() {

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Config
	if err := loadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, logs
	shutdowns, err := initTelemetry(ctx, cfg)
	defer func() {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			_ = shutdowns[i](context.Background())
		}
	}()
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}

	// Storage and handler
	h, kv, err := initHandler(cfg)
	if err != nil {
		observability.Logger.Fatal("storage init failed", zap.Error(err))
	}

	if fkv, ok := kv.(*storage.FileKV); ok && cfg.WatchStorage {
		go watchStorage(ctx, fkv, h.Reload)
	}

	// Router
	router := server.NewRouter(h)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func watchStorage(ctx context.Context, kv *storage.FileKV, reload func() error) {
	err := kv.Watch(ctx, func() {
		if err := reload(); err != nil {
			observability.Logger.Warn("reloading stores failed", zap.Error(err))
		}
	})
	if err != nil {
		observability.Logger.Error("storage watch stopped", zap.String("path", kv.Path()), zap.Error(err))
	}
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}
