// Package config loads runtime settings from REPASO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "REPASO_"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the default data dir.
	DB string `env:"DB"`

	// QuestionsURL and ModulesURL locate the two datasets, as a file path
	// or an http(s) URL. Empty means a file in the data dir.
	QuestionsURL string `env:"QUESTIONS_URL"`
	ModulesURL   string `env:"MODULES_URL"`

	// RequiredModules must be present in both datasets for a load to
	// succeed.
	RequiredModules []string `env:"REQUIRED_MODULES" envSeparator:","`

	Store   Store
	Runtime Runtime
	Log     Log
}

// Store selects where history is kept.
type Store struct {
	Backend     string `env:"STORE_BACKEND" envDefault:"sqlite"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"repaso"`
}

// Runtime groups quiz defaults.
type Runtime struct {
	LoadTimeout     time.Duration `env:"LOAD_TIMEOUT" envDefault:"10s"`
	DefaultCount    int           `env:"DEFAULT_COUNT" envDefault:"20"`
	MaxDrawAttempts int           `env:"MAX_DRAW_ATTEMPTS" envDefault:"5000"`
}

// Log configures logging.
type Log struct {
	File  string `env:"LOG_FILE"`
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the process environment. Variables in
// dotenvPath, if the file exists, fill in anything not already set.
func Load(dotenvPath string) (*Config, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		default:
			for k, v := range vars {
				if _, set := environ[k]; !set {
					environ[k] = v
				}
			}
		}
	}

	return LoadFrom(environ)
}

// LoadFrom parses configuration from environ and validates it.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("%sSTORE_BACKEND: unknown backend %q", EnvPrefix, c.Store.Backend))
	}
	if c.Runtime.LoadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sLOAD_TIMEOUT must be positive", EnvPrefix))
	}
	if c.Runtime.DefaultCount <= 0 {
		errs = append(errs, fmt.Errorf("%sDEFAULT_COUNT must be positive", EnvPrefix))
	}
	if c.Runtime.MaxDrawAttempts <= 0 {
		errs = append(errs, fmt.Errorf("%sMAX_DRAW_ATTEMPTS must be positive", EnvPrefix))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WithDataDir fills empty locations with files under dir.
func (c *Config) WithDataDir(dir string) {
	if c.DB == "" {
		c.DB = filepath.Join(dir, "repaso.db")
	}
	if c.QuestionsURL == "" {
		c.QuestionsURL = filepath.Join(dir, "questions.json")
	}
	if c.ModulesURL == "" {
		c.ModulesURL = filepath.Join(dir, "modules.json")
	}
}
