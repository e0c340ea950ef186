// Package config loads runtime configuration for the SimpleTemp client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by -c or -config.
//  3. SIMPLETEMP_* environment variables.
//  4. Command-line flags.
//
// Flags
//
//	-d string   database path (file for sqlite, directory for badger)
//	-e string   store engine: sqlite or badger
//	-a string   host:port of the replication endpoint
//	-m string   replication mode: push, pull or push-and-pull
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations are strings like "30s" or integer nanoseconds. Keys that are
// absent leave the current value alone.
//
//	{
//	  "database_path": "simpletemp.db",
//	  "store_engine": "sqlite",
//	  "sync_target": "localhost:4984",
//	  "sync_mode": "push-and-pull",
//	  "sync_continuous": false,
//	  "sync_interval": "1m",
//	  "sync_timeout": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
