package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/simpletemp/internal/flagx"
)

// parseFlags overlays cfg with -d, -e, -a, -m and -l. Other arguments are
// filtered out before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("simpletemp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database path")
	fs.StringVar(&cfg.StoreEngine, "e", cfg.StoreEngine, "store engine (sqlite or badger)")
	fs.StringVar(&cfg.SyncTarget, "a", cfg.SyncTarget, "replication endpoint host:port")
	fs.StringVar(&cfg.SyncMode, "m", cfg.SyncMode, "replication mode (push, pull, push-and-pull)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, "d", "e", "a", "m", "l"))
}
