// Package config centralizes process configuration for the load CLI. It
// follows a "clean" configuration pattern where all tunables live outside
// the code and are sourced from command-line flags with environment-
// variable fallbacks (12-factor friendly). Flags are defined first so
// that `-help` shows all available knobs and their defaults.
//
// Typical usage:
//
//	cfg := config.Load() // reads os.Args and os.Environ
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg := config.LoadFromArgs(fs, getenv, []string{"-workers=4"})
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/ejo6/DataWarehouse/internal/scan"
)

// Config holds all process configuration derived from flags and
// environment variables. All fields are plain values so the struct can
// be safely copied and used across goroutines after construction.
type Config struct {
	// DB describes the target database.
	DBDriver string // Storage backend: "sqlite", "postgres", "mssql", or "mysql".
	DSN      string // Backend connection string.
	Table    string // Destination table; empty derives it from the input file name.

	// Import tunables control ingestion throughput.
	BatchSize int  // Number of rows per bulk-insert batch.
	Workers   int  // Number of files loaded in parallel.
	Dedupe    bool // Drop repeated identical lines within one file.

	// Scan guards bound memory on hostile input.
	MaxLineBytes int // Longest physical line kept before truncation.
	MaxColumns   int // Hard cap on fields per record.

	// Diagnostics and metrics.
	SkippedDir     string // Directory for skipped-line logs; empty disables them.
	MetricsBackend string // Metrics backend: "" (none) or "prompush".
	PushgatewayURL string // Pushgateway base URL for the prompush backend.
}

// LoadFromArgs builds a Config by defining flags on fs, wiring each flag
// to an environment-variable fallback via getenv, and then parsing args.
// This is the most testable entry point: callers supply a private FlagSet,
// a getenv func (often backed by a map), and a synthetic arg slice.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags (in args) override the seeded defaults.
//
// The returned Config is fully populated; no further mutation occurs.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) *Config {
	cfg := &Config{}

	// Inline helpers use the provided getenv to avoid touching process env.
	envOrDefaultFn := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}
	intEnvOrDefaultFn := func(k string, d int) int {
		if v := getenv(k); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return d
	}
	boolEnvOrDefaultFn := func(k string, d bool) bool {
		if v := strings.ToLower(getenv(k)); v != "" {
			switch v {
			case "1", "true", "yes", "on":
				return true
			case "0", "false", "no", "off":
				return false
			}
		}
		return d
	}

	// DB connectivity
	fs.StringVar(&cfg.DBDriver, "db_driver", envOrDefaultFn("DB_DRIVER", "sqlite"), "Storage backend: 'sqlite', 'postgres', 'mssql', or 'mysql'.")
	fs.StringVar(&cfg.DSN, "dsn", envOrDefaultFn("DB_DSN", "warehouse.db"), "Backend connection string.")
	fs.StringVar(&cfg.Table, "table", getenv("DB_TABLE"), "Destination table (default: derived from the input file name).")

	// Throughput & toggles
	fs.IntVar(&cfg.BatchSize, "batch_size", intEnvOrDefaultFn("BATCH_SIZE", 5000), "Number of rows per bulk-insert batch")
	fs.IntVar(&cfg.Workers, "workers", intEnvOrDefaultFn("WORKERS", 4), "Number of files loaded in parallel")
	fs.BoolVar(&cfg.Dedupe, "dedupe", boolEnvOrDefaultFn("DEDUPE", false), "Drop repeated identical lines within one file")

	// Scan guards
	fs.IntVar(&cfg.MaxLineBytes, "max_line_bytes", intEnvOrDefaultFn("MAX_LINE_BYTES", scan.DefaultMaxLineBytes), "Longest physical line kept before truncation")
	fs.IntVar(&cfg.MaxColumns, "max_cols", intEnvOrDefaultFn("MAX_COLS", scan.DefaultMaxColumns), "Hard cap on fields per record")

	// Diagnostics & metrics
	fs.StringVar(&cfg.SkippedDir, "skipped_dir", envOrDefaultFn("SKIPPED_DIR", "./skipped"), "Directory for skipped-line logs ('' disables)")
	fs.StringVar(&cfg.MetricsBackend, "metrics", getenv("METRICS_BACKEND"), "Metrics backend: '' (none) or 'prompush'")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway_url", envOrDefaultFn("PUSHGATEWAY_URL", "http://localhost:9091"), "Pushgateway base URL for the prompush backend")

	// Parse the provided args (nil means no extra args).
	if args == nil {
		args = []string{}
	}
	_ = fs.Parse(args)
	return cfg
}

// LoadFrom is a compatibility wrapper around LoadFromArgs for call-sites
// that don't need to pass args explicitly (useful in some tests).
func LoadFrom(fs *flag.FlagSet, getenv func(string) string) *Config {
	return LoadFromArgs(fs, getenv, nil)
}

// Load is the production entry point. It wires the loader to the process
// flag set (flag.CommandLine), reads environment variables via os.Getenv,
// and parses os.Args[1:] as the CLI arguments.
func Load() *Config {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}
