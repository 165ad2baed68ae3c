// Package config reads process configuration from the environment. Values
// from a .env file are loaded by cmd/api before Load runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// StoragePath is the JSON file backing history, memory and preferences.
	// Empty keeps everything in process memory.
	StoragePath string

	// WatchStorage reloads the stores when StoragePath changes on disk.
	WatchStorage bool

	// OTLPEnabled turns on trace and metric export.
	OTLPEnabled bool

	// OTLPLogs additionally exports logs through the otelzap bridge.
	OTLPLogs bool

	// SessionLimit caps concurrently open basic-mode sessions.
	SessionLimit int

	// SessionIdleTTL drops basic-mode sessions untouched for this long.
	// Zero keeps them until they are evicted by the limit.
	SessionIdleTTL time.Duration

	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		OTLPEnabled:     true,
		SessionLimit:    1024,
		SessionIdleTTL:  30 * time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load overlays environment variables on Default.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("CALC_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.StoragePath = os.Getenv("CALC_STORAGE_PATH")

	var err error
	if cfg.WatchStorage, err = boolEnv("CALC_WATCH_STORAGE", cfg.WatchStorage); err != nil {
		return Config{}, err
	}
	if cfg.OTLPEnabled, err = boolEnv("CALC_OTLP_ENABLED", cfg.OTLPEnabled); err != nil {
		return Config{}, err
	}
	if cfg.OTLPLogs, err = boolEnv("CALC_OTLP_LOGS", cfg.OTLPLogs); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("CALC_SESSION_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("CALC_SESSION_LIMIT: expected positive integer, got %q", v)
		}
		cfg.SessionLimit = n
	}

	if cfg.SessionIdleTTL, err = durationEnv("CALC_SESSION_TTL", cfg.SessionIdleTTL); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("CALC_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}

	if cfg.WatchStorage && cfg.StoragePath == "" {
		return Config{}, fmt.Errorf("CALC_WATCH_STORAGE requires CALC_STORAGE_PATH")
	}

	return cfg, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %s", key, v)
	}
	return d, nil
}
