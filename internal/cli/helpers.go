package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/config"
	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/neon"
	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/store"
)

func newLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "neon-branch",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

func newClient(cfg *config.Config, logger hclog.Logger) *neon.Client {
	opts := []neon.Option{neon.WithLogger(logger)}
	if cfg.APIRetries > 0 {
		opts = append(opts, neon.WithRetries(uint64(cfg.APIRetries)))
	}
	return neon.NewClient(cfg.APIKey, opts...)
}

func openStore() (*store.DB, error) {
	path, err := store.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("locating state file: %w", err)
	}
	return store.Open(path)
}

// stdinIsTerminal reports whether an interactive prompt makes sense.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
