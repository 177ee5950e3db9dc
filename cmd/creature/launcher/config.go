// This file maps the CLI context and an optional config file onto the Config struct.

package launcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Logging LoggingConfig
	Store   StoreConfig
	Convert ConvertConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type StoreConfig struct {
	Dir     string
	CacheMB int
	Handles int
}

type ConvertConfig struct {
	BufferSize int
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

//	defaultConfig creates a default config object from DefaultConfig in defaults.go, so this file
//	stays in sync with the documented defaults.

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
			SentryDSN: d.Logging.SentryDSN,
		},
		Store: StoreConfig{
			Dir:     resolvePath(d.Storage.Dir),
			CacheMB: d.Storage.CacheSizeMB,
			Handles: d.Storage.Handles,
		},
		Convert: ConvertConfig{
			BufferSize: d.Convert.BufferSize,
		},
	}
}

// MakeAllConfigs merges defaults, config-file values, and CLI overrides into a single config
// struct, in that order of precedence (last wins).

func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if c, ok := lookup(ctx, "config"); ok {
		file := c.String("config")
		if err := loadConfigFile(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

// loadConfigFile decodes a JSON document shaped like Config over cfg. Fields the file leaves
// out keep their current values; unknown fields are rejected.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	cfg.Store.Dir = resolvePath(cfg.Store.Dir)
	return nil
}

// lookup finds the innermost context in which flag name was given explicitly. Common flags are
// accepted both before and after the command name.
func lookup(ctx *cli.Context, name string) (*cli.Context, bool) {
	for c := ctx; c != nil; c = c.Parent() {
		if c.IsSet(name) {
			return c, true
		}
	}
	return nil, false
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if c, ok := lookup(ctx, "log.format"); ok {
		cfg.Logging.Format = c.String("log.format")
	}
	if c, ok := lookup(ctx, "log.verbosity"); ok {
		cfg.Logging.Verbosity = c.Int("log.verbosity")
	}
	if c, ok := lookup(ctx, "log.color"); ok {
		cfg.Logging.Color = c.Bool("log.color")
	}
	if c, ok := lookup(ctx, "sentry.dsn"); ok {
		cfg.Logging.SentryDSN = c.String("sentry.dsn")
	}

	if c, ok := lookup(ctx, "store.dir"); ok {
		cfg.Store.Dir = resolvePath(c.String("store.dir"))
	}
	if c, ok := lookup(ctx, "store.cache"); ok {
		cfg.Store.CacheMB = c.Int("store.cache")
	}
	if c, ok := lookup(ctx, "store.handles"); ok {
		cfg.Store.Handles = c.Int("store.handles")
	}

	if c, ok := lookup(ctx, "buffer.size"); ok {
		cfg.Convert.BufferSize = c.Int("buffer.size")
	}
}

func validate(cfg *Config) error {
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", cfg.Logging.Format)
	}
	if cfg.Store.CacheMB < 0 {
		return fmt.Errorf("store cache must not be negative, got %d", cfg.Store.CacheMB)
	}
	if cfg.Convert.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative, got %d", cfg.Convert.BufferSize)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
