package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/game"
	"github.com/vovakirdan/gunjam/internal/platform/tui"
	"github.com/vovakirdan/gunjam/internal/save"
	"github.com/vovakirdan/gunjam/internal/storage"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// newLogger builds a logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gunjam",
		Level:           level,
	}), nil
}

// openLogFile opens the --log-file for appending. The terminal belongs to
// Bubble Tea while playing, so interactive commands log here.
func openLogFile() (*log.Logger, func(), error) {
	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadConfig loads the game config and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the runs database. Play goes on without history when it
// cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// saveBackend picks where save records live: files under --save-dir, or the
// records table of the database.
func saveBackend(store *storage.Store) (save.Backend, error) {
	if flagSaveDir != "" {
		files, err := save.NewFileBackend(flagSaveDir)
		if err != nil {
			return nil, err
		}
		return files, nil
	}
	if store == nil {
		return nil, nil
	}
	return store, nil
}

// runtimeConfig builds the runtime config from global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

var _ tui.Game = (*game.Game)(nil)

// gameFactory returns a factory building arenas that share cfg and saves.
func gameFactory(cfg config.Config, saves save.Backend, settings save.Settings, logger *log.Logger) tui.GameFactory {
	return func(gun string) (tui.Game, error) {
		return game.New(game.Options{
			Config:   cfg,
			Gun:      gun,
			Saves:    saves,
			Settings: settings,
			Logger:   logger,
		})
	}
}

// loadSettings reads the settings record, falling back to defaults.
func loadSettings(saves save.Backend, logger *log.Logger) save.Settings {
	if saves == nil {
		return save.DefaultSettings()
	}
	return save.LoadOrDefault(saves, save.KeySettings, save.DefaultSettings(), logger).Clamped()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
