// Package load implements the two-pass CSV import: pass one sniffs the
// file to derive a schema, pass two streams rows into a storage backend
// in bulk batches. Anomalous lines go to a skip log, dedupe is optional,
// and per-step metrics are recorded.
package load

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ejo6/DataWarehouse/internal/ddl"
	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/metrics"
	"github.com/ejo6/DataWarehouse/internal/scan"
	"github.com/ejo6/DataWarehouse/internal/schema"
	"github.com/ejo6/DataWarehouse/internal/skiplog"
	"github.com/ejo6/DataWarehouse/internal/storage"
)

// Options configure a load run. Backend and DSN are required; everything
// else has a usable zero value.
type Options struct {
	// Backend is the storage backend the rows go to.
	Backend storage.Backend

	// DSN is the backend connection string.
	DSN string

	// Table overrides the destination table. Empty derives it from the
	// input file name.
	Table string

	// Scan carries the delimiter and guard limits. Its Diag field is
	// ignored; the loader wires its own skip log.
	Scan scan.Options

	// BatchSize is the number of rows per CopyFrom call. Zero means 5000.
	BatchSize int

	// Workers bounds how many files Files loads in parallel. Zero means 1.
	Workers int

	// Dedupe drops repeated identical raw lines within one file.
	Dedupe bool

	// SkippedDir receives skip logs for diagnosed lines. Empty disables
	// skip logging.
	SkippedDir string
}

// Stats summarizes one loaded file.
type Stats struct {
	Source string
	Table  string
	Schema schema.Schema

	RowsRead     int64 // data lines seen (header excluded)
	RowsInserted int64
	RowsSkipped  int64 // blank lines
	RowsDeduped  int64
	Batches      int64

	SkipCounts map[scan.DiagKind]int64
	SkipPath   string
}

// TableFromPath derives a destination table name from a file path:
// "data/Daily Export.CSV" becomes "daily_export".
func TableFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return schema.NormalizeColumn(base)
}

// File loads one CSV file end to end: sniff, create table, stream rows.
func File(ctx context.Context, opts Options, path string) (*Stats, error) {
	if opts.Backend.New == nil {
		return nil, fmt.Errorf("load: backend is required")
	}
	table := opts.Table
	if table == "" {
		table = TableFromPath(path)
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 5000
	}

	st := &Stats{Source: path, Table: table}

	var sl *skiplog.Log
	if opts.SkippedDir != "" {
		var cleanup func()
		var err error
		sl, cleanup, err = skiplog.New(opts.SkippedDir, path)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		defer cleanup()
		st.SkipPath = sl.Path()
	}

	// Pass one: derive the schema. Diagnostics are reported during pass
	// two only, so ragged lines are not logged twice.
	scanOpts := opts.Scan
	scanOpts.Diag = nil

	start := time.Now()
	s, err := scan.SniffFile(ctx, path, scanOpts)
	metrics.RecordStep(table, "sniff", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load: sniff %s: %w", path, err)
	}
	st.Schema = s
	if s.Len() == 0 {
		// Nothing to create or insert; an empty file is a clean no-op.
		return st, nil
	}

	tdef, err := ddl.FromSchema(table, s, opts.Backend.MapType)
	if err != nil {
		return nil, fmt.Errorf("load: ddl for %s: %w", path, err)
	}
	columns := make([]string, len(tdef.Columns))
	for i, c := range tdef.Columns {
		columns[i] = c.Name
	}

	repo, closeRepo, err := opts.Backend.New(ctx, storage.Config{
		DSN:     opts.DSN,
		Table:   table,
		Columns: columns,
	})
	if err != nil {
		return nil, fmt.Errorf("load: connect: %w", err)
	}
	defer closeRepo()

	createSQL, err := ddl.BuildCreateTableSQL(tdef, opts.Backend.Quote)
	if err != nil {
		return nil, fmt.Errorf("load: ddl for %s: %w", path, err)
	}

	start = time.Now()
	err = repo.Exec(ctx, createSQL)
	metrics.RecordStep(table, "create", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load: create table %s: %w", table, err)
	}

	start = time.Now()
	err = streamRows(ctx, repo, sl, opts, s, columns, path, batchSize, st)
	metrics.RecordStep(table, "copy", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if sl != nil {
		st.SkipCounts = sl.Counts()
	}
	metrics.RecordRow(table, "read", st.RowsRead)
	metrics.RecordRow(table, "inserted", st.RowsInserted)
	metrics.RecordRow(table, "skipped", st.RowsSkipped)
	metrics.RecordRow(table, "deduped", st.RowsDeduped)
	metrics.RecordBatches(table, st.Batches)
	return st, nil
}

// streamRows is pass two: re-read the file, convert each data line to a
// typed row, and flush batches to the repository.
func streamRows(
	ctx context.Context,
	repo storage.Repository,
	sl *skiplog.Log,
	opts Options,
	s schema.Schema,
	columns []string,
	path string,
	batchSize int,
	st *Stats,
) error {
	scanOpts := opts.Scan
	if scanOpts.MaxLineBytes <= 0 {
		scanOpts.MaxLineBytes = scan.DefaultMaxLineBytes
	}
	if scanOpts.MaxColumns <= 0 {
		scanOpts.MaxColumns = scan.DefaultMaxColumns
	}
	delim := scanOpts.Delimiter
	if delim == 0 {
		delim = ','
	}
	diag := func(d scan.Diag) {
		if sl != nil {
			_ = sl.Record(d)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: open %s: %w", path, err)
	}
	defer f.Close()

	ls := scan.NewLineScanner(f, scanOpts.MaxLineBytes)
	if !ls.Scan() {
		return ls.Err() // header vanished between passes; treat EOF as done
	}

	var seen map[uint64]struct{}
	if opts.Dedupe {
		seen = make(map[uint64]struct{})
	}

	width := s.Len()
	batch := make([][]any, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := repo.CopyFrom(ctx, columns, batch)
		if err != nil {
			return fmt.Errorf("load: copy into %s: %w", st.Table, err)
		}
		st.RowsInserted += n
		st.Batches++
		batch = batch[:0]
		return nil
	}

	var fields [][]byte
	for lineNo := 2; ls.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := ls.Bytes()
		st.RowsRead++

		if ls.Truncated() {
			diag(scan.Diag{Kind: scan.DiagTruncatedLine, Line: lineNo, Columns: width, Raw: line})
		}
		if opts.Dedupe {
			h := xxh3.Hash(line)
			if _, dup := seen[h]; dup {
				st.RowsDeduped++
				continue
			}
			seen[h] = struct{}{}
		}

		fields = scan.SplitLine(line, delim, fields, scanOpts.MaxColumns)
		switch {
		case len(fields) == 0:
			st.RowsSkipped++
			continue
		case len(fields) > width:
			diag(scan.Diag{Kind: scan.DiagLongRow, Line: lineNo, Fields: len(fields), Columns: width, Raw: line})
		case len(fields) < width:
			diag(scan.Diag{Kind: scan.DiagShortRow, Line: lineNo, Fields: len(fields), Columns: width, Raw: line})
		}

		batch = append(batch, fitRow(fields, s.Types))
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := ls.Err(); err != nil {
		return fmt.Errorf("load: read %s: %w", path, err)
	}
	return flush()
}

// fitRow pads or cuts fields to the schema width and converts each cell
// to the driver value for its column type. Empty cells become NULL.
func fitRow(fields [][]byte, types []infer.ColumnType) []any {
	row := make([]any, len(types))
	for i := range types {
		if i >= len(fields) {
			continue // missing trailing cell stays NULL
		}
		row[i] = cellValue(fields[i], types[i])
	}
	return row
}

// cellValue converts one cell. The sniff pass guarantees numeric columns
// only ever saw numeric-shaped cells, but a truncated or replayed file
// can still disagree; unparseable cells degrade to NULL rather than
// failing the batch.
func cellValue(cell []byte, t infer.ColumnType) any {
	if len(cell) == 0 {
		return nil
	}
	switch t {
	case infer.Integer:
		if v, err := strconv.ParseInt(strings.TrimSpace(string(cell)), 10, 64); err == nil {
			return v
		}
		return nil
	case infer.Real:
		if v, err := strconv.ParseFloat(strings.TrimSpace(string(cell)), 64); err == nil {
			return v
		}
		return nil
	default:
		return string(cell)
	}
}
