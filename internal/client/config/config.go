package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/client"
	"github.com/dmitrijs2005/simpletemp/internal/client/sync"
	"github.com/dmitrijs2005/simpletemp/internal/flagx"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SIMPLETEMP_"

// Config holds runtime settings for the client.
type Config struct {
	DatabasePath   string        `env:"DB_PATH"`
	StoreEngine    string        `env:"STORE_ENGINE"`
	SyncTarget     string        `env:"SYNC_TARGET"`
	SyncMode       string        `env:"SYNC_MODE"`
	SyncContinuous bool          `env:"SYNC_CONTINUOUS"`
	SyncInterval   time.Duration `env:"SYNC_INTERVAL"`
	SyncTimeout    time.Duration `env:"SYNC_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "simpletemp.db"
	c.StoreEngine = client.EngineSQLite
	c.SyncTarget = "localhost:4984"
	c.SyncMode = sync.PushAndPull.String()
	c.SyncContinuous = false
	c.SyncInterval = time.Minute
	c.SyncTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports settings no component could work with.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreEngine {
	case client.EngineSQLite, client.EngineBadger:
	default:
		errs = append(errs, fmt.Errorf("unknown store engine %q", c.StoreEngine))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.SyncTarget == "" {
		errs = append(errs, errors.New("sync target is empty"))
	}
	if _, err := sync.ParseReplicationType(c.SyncMode); err != nil {
		errs = append(errs, err)
	}
	if c.SyncContinuous && c.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("sync interval must be positive, got %s", c.SyncInterval))
	}
	if c.SyncTimeout < 0 {
		errs = append(errs, fmt.Errorf("sync timeout must not be negative, got %s", c.SyncTimeout))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the JSON file named in args,
// the process environment and args, in that order. args excludes the
// program name.
func LoadConfig(args []string) (*Config, error) {
	return load(args, nil)
}

// load is LoadConfig with an explicit environment; nil means the process
// environment.
func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
