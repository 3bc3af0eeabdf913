// Package commands implements the figo CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fiware-community/figo/config"
)

// App carries the state shared by all subcommands: global flag values and
// the lazily loaded configuration.
type App struct {
	// ConfigPath overrides the layered config discovery when set.
	ConfigPath string

	// LogLevel is the slog level name.
	LogLevel string

	cfg    *config.Config
	logger *slog.Logger
}

// Logger builds (once) the application logger from the log level flag.
func (a *App) Logger() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	level := slog.LevelInfo
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return a.logger
}

// Config loads (once) the configuration: the explicit file when the flag
// is set, the layered defaults otherwise.
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	if a.ConfigPath != "" {
		cfg, err := config.LoadFromFile(a.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config %s: %w", a.ConfigPath, err)
		}
		a.cfg = cfg
		return cfg, nil
	}

	cfg, err := config.NewLoader(a.Logger()).Load()
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}
