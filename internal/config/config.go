// Package config loads environment configuration for deskquad.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/launcher"
)

const (
	defaultListenAddr    = "127.0.0.1:8788"
	defaultDataDir       = "./data"
	defaultPollInterval  = 250
	defaultPollTimeout   = 15000
	defaultSettleMs      = 500
	defaultMinWidth      = 200
	defaultMinHeight     = 120
	defaultLogMaxSizeMB  = 5
	defaultLogMaxFiles   = 3
	defaultLogMaxAgeDays = 14
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr      string
	ControlPassword string
	DataDir         string
	CatalogPath     string
	LogDir          string
	FillRatio       float64
	EdgeMarginRatio float64
	QuadrantOrder   []geometry.Quadrant
	PollIntervalMs  int
	PollTimeoutMs   int
	SettleMs        int
	MinWindowWidth  int
	MinWindowHeight int
	LogMaxSizeMB    int
	LogMaxFiles     int
	LogMaxAgeDays   int
	Debug           bool
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      defaultListenAddr,
		DataDir:         defaultDataDir,
		FillRatio:       geometry.DefaultFillRatio,
		EdgeMarginRatio: geometry.DefaultEdgeMarginRatio,
		PollIntervalMs:  defaultPollInterval,
		PollTimeoutMs:   defaultPollTimeout,
		SettleMs:        defaultSettleMs,
		MinWindowWidth:  defaultMinWidth,
		MinWindowHeight: defaultMinHeight,
		LogMaxSizeMB:    defaultLogMaxSizeMB,
		LogMaxFiles:     defaultLogMaxFiles,
		LogMaxAgeDays:   defaultLogMaxAgeDays,
	}

	if err := loadEnvFile(filepath.Join(envString("DATA_DIR", cfg.DataDir), ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.CatalogPath = envString("CATALOG_PATH", filepath.Join(cfg.DataDir, "catalog.yaml"))
	cfg.LogDir = envString("LOG_DIR", filepath.Join(cfg.DataDir, "logs"))
	cfg.ControlPassword = strings.TrimSpace(os.Getenv("CONTROL_PASSWORD"))
	cfg.Debug = envBool("DEBUG", cfg.Debug)

	fill, err := envFloat("FILL_RATIO", cfg.FillRatio)
	if err != nil {
		return Config{}, err
	}
	margin, err := envFloat("EDGE_MARGIN_RATIO", cfg.EdgeMarginRatio)
	if err != nil {
		return Config{}, err
	}
	if err := geometry.ValidateRatios(fill, margin); err != nil {
		return Config{}, fmt.Errorf("FILL_RATIO/EDGE_MARGIN_RATIO: %w", err)
	}
	cfg.FillRatio = fill
	cfg.EdgeMarginRatio = margin

	order, err := launcher.ParseOrder(envString("QUADRANT_ORDER", launcher.DefaultOrder))
	if err != nil {
		return Config{}, fmt.Errorf("QUADRANT_ORDER: %w", err)
	}
	cfg.QuadrantOrder = order

	ints := []struct {
		key string
		dst *int
		min int
	}{
		{"POLL_INTERVAL_MS", &cfg.PollIntervalMs, 1},
		{"POLL_TIMEOUT_MS", &cfg.PollTimeoutMs, 1},
		{"SETTLE_MS", &cfg.SettleMs, 0},
		{"MIN_WINDOW_WIDTH", &cfg.MinWindowWidth, 0},
		{"MIN_WINDOW_HEIGHT", &cfg.MinWindowHeight, 0},
		{"LOG_MAX_SIZE_MB", &cfg.LogMaxSizeMB, 1},
		{"LOG_MAX_FILES", &cfg.LogMaxFiles, 0},
		{"LOG_MAX_AGE_DAYS", &cfg.LogMaxAgeDays, 0},
	}
	for _, it := range ints {
		v, err := envInt(it.key, *it.dst)
		if err != nil {
			return Config{}, err
		}
		if v < it.min {
			return Config{}, fmt.Errorf("%s must be >= %d", it.key, it.min)
		}
		*it.dst = v
	}
	if cfg.PollTimeoutMs < cfg.PollIntervalMs {
		return Config{}, errors.New("POLL_TIMEOUT_MS must be >= POLL_INTERVAL_MS")
	}

	return cfg, nil
}

// RequireControlPassword fails when the control server would run unauthenticated.
func (c Config) RequireControlPassword() error {
	if c.ControlPassword == "" {
		return errors.New("CONTROL_PASSWORD is required")
	}
	return nil
}

// PlacerOptions converts the layout and polling settings for the launcher.
func (c Config) PlacerOptions() launcher.Options {
	return launcher.Options{
		FillRatio:       c.FillRatio,
		EdgeMarginRatio: c.EdgeMarginRatio,
		PollInterval:    time.Duration(c.PollIntervalMs) * time.Millisecond,
		PollTimeout:     time.Duration(c.PollTimeoutMs) * time.Millisecond,
		Settle:          time.Duration(c.SettleMs) * time.Millisecond,
	}
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the environment.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
