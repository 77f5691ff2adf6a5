// Command csvload sniffs one or more CSV files, creates matching tables
// in the configured database, and bulk-loads the rows.
//
// Usage:
//
//	csvload [flags] file.csv [file2.csv ...]
//	csvload [flags] -list inputs.txt
//
// Exit status: 0 on success, 1 on load/database errors, 2 on usage or
// configuration errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ejo6/DataWarehouse/internal/config"
	"github.com/ejo6/DataWarehouse/internal/datasource/file"
	"github.com/ejo6/DataWarehouse/internal/load"
	"github.com/ejo6/DataWarehouse/internal/metrics"
	"github.com/ejo6/DataWarehouse/internal/metrics/prompush"
	"github.com/ejo6/DataWarehouse/internal/scan"
	"github.com/ejo6/DataWarehouse/internal/storage"

	// register all backends with the storage factory; the config picks
	// which one to use at runtime.
	_ "github.com/ejo6/DataWarehouse/internal/storage/all"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	listPath := fs.String("list", "", "file with one input path per line ('#' comments allowed)")
	cfg := config.LoadFromArgs(fs, getenv, args)
	if fs.NArg() == 0 && *listPath == "" {
		fmt.Fprintln(stderr, "usage: csvload [flags] file.csv [file2.csv ...]")
		fs.PrintDefaults()
		return 2
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.FirstError(issues) != nil {
		return 2
	}

	paths := fs.Args()
	if *listPath != "" {
		listed, err := file.ReadList(*listPath)
		if err != nil {
			fmt.Fprintf(stderr, "csvload: %v\n", err)
			return 2
		}
		paths = append(paths, listed...)
	}
	if cfg.Table != "" && len(paths) > 1 {
		fmt.Fprintln(stderr, "csvload: -table only makes sense with a single input file")
		return 2
	}

	backend, err := storage.Lookup(cfg.DBDriver)
	if err != nil {
		fmt.Fprintf(stderr, "csvload: %v\n", err)
		return 2
	}

	setupMetrics(cfg)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	stats, err := load.Files(context.Background(), load.Options{
		Backend: backend,
		DSN:     cfg.DSN,
		Table:   cfg.Table,
		Scan: scan.Options{
			MaxLineBytes: cfg.MaxLineBytes,
			MaxColumns:   cfg.MaxColumns,
		},
		BatchSize:  cfg.BatchSize,
		Workers:    cfg.Workers,
		Dedupe:     cfg.Dedupe,
		SkippedDir: cfg.SkippedDir,
	}, paths)
	if err != nil {
		fmt.Fprintf(stderr, "csvload: %v\n", err)
		return 1
	}

	for _, st := range stats {
		fmt.Fprintf(stdout, "%s -> %s: read=%d inserted=%d skipped=%d deduped=%d batches=%d\n",
			st.Source, st.Table, st.RowsRead, st.RowsInserted, st.RowsSkipped, st.RowsDeduped, st.Batches)
		if len(st.SkipCounts) > 0 {
			fmt.Fprintf(stdout, "  skip log %s: %v\n", st.SkipPath, st.SkipCounts)
		}
	}
	return 0
}

// setupMetrics installs the configured metrics backend. Failures degrade
// to the nop backend; metrics must never block a load.
func setupMetrics(cfg *config.Config) {
	if cfg.MetricsBackend != "prompush" {
		return
	}
	b, err := prompush.NewBackend("csvload", cfg.PushgatewayURL)
	if err != nil {
		log.Printf("metrics: init prompush: %v; using nop", err)
		return
	}
	log.Printf("metrics: backend=prompush url=%s", cfg.PushgatewayURL)
	metrics.SetBackend(b)
}
