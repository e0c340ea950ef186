package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Duration reads either a Go duration string ("1m30s") or an integer
// number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %s: %w", b, err)
	}
	*d = Duration(n)
	return nil
}

// JsonConfig is the on-disk shape. Pointers distinguish absent keys from
// zero values.
type JsonConfig struct {
	DatabasePath   *string   `json:"database_path"`
	StoreEngine    *string   `json:"store_engine"`
	SyncTarget     *string   `json:"sync_target"`
	SyncMode       *string   `json:"sync_mode"`
	SyncContinuous *bool     `json:"sync_continuous"`
	SyncInterval   *Duration `json:"sync_interval"`
	SyncTimeout    *Duration `json:"sync_timeout"`
	LogLevel       *string   `json:"log_level"`
	LogFormat      *string   `json:"log_format"`
}

// parseJson overlays cfg with the file at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.StoreEngine, jc.StoreEngine)
	setString(&cfg.SyncTarget, jc.SyncTarget)
	setString(&cfg.SyncMode, jc.SyncMode)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.SyncContinuous != nil {
		cfg.SyncContinuous = *jc.SyncContinuous
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = time.Duration(*jc.SyncInterval)
	}
	if jc.SyncTimeout != nil {
		cfg.SyncTimeout = time.Duration(*jc.SyncTimeout)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
