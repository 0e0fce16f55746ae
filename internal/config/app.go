// Package config provides configuration helpers for JingXin commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults for the analysis service.
const (
	DefaultPort     = "8090"
	DefaultTickRate = 30.0
	DefaultLogLevel = "info"
)

// App holds process-level settings read from the environment.
type App struct {
	// Port is the HTTP listen port for the analysis service.
	Port string

	// TickRate is the expected frame rate of the perception stream (ticks/sec).
	TickRate float64

	// DataDir is where session reports are persisted.
	DataDir string

	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string
}

// Load reads the app configuration from environment variables.
// Unset variables fall back to documented defaults.
func Load() (App, error) {
	app := App{
		Port:     envOr("PORT", DefaultPort),
		TickRate: DefaultTickRate,
		DataDir:  os.Getenv("JINGXIN_DATA_DIR"),
		LogLevel: envOr("JINGXIN_LOG_LEVEL", DefaultLogLevel),
	}

	if raw := os.Getenv("JINGXIN_TICK_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			return App{}, fmt.Errorf("config: invalid JINGXIN_TICK_RATE %q", raw)
		}
		app.TickRate = rate
	}

	if app.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return App{}, fmt.Errorf("config: cannot resolve data dir: %w", err)
		}
		app.DataDir = filepath.Join(home, ".jingxin")
	}

	return app, nil
}

// ReportsPath returns the report store file path under the data dir.
func (a App) ReportsPath() string {
	return filepath.Join(a.DataDir, "reports.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
