package scan

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/schema"
)

// Default guard limits. They bound memory, not correctness: input past a
// limit is truncated or capped rather than failing the scan.
const (
	DefaultMaxLineBytes = 1 << 20
	DefaultMaxColumns   = 8192
)

// DiagKind identifies a non-fatal anomaly observed while scanning.
type DiagKind uint8

const (
	// DiagShortRow marks a data row with fewer fields than the header; the
	// missing trailing columns were treated as empty.
	DiagShortRow DiagKind = iota
	// DiagLongRow marks a data row with more fields than the header; the
	// excess fields were dropped.
	DiagLongRow
	// DiagTruncatedLine marks a physical line that exceeded MaxLineBytes
	// and was cut at the bound.
	DiagTruncatedLine
)

// String returns a stable reason label used in skip logs and tests.
func (k DiagKind) String() string {
	switch k {
	case DiagShortRow:
		return "short_row"
	case DiagLongRow:
		return "long_row"
	case DiagTruncatedLine:
		return "truncated_line"
	default:
		return "unknown"
	}
}

// Diag describes one anomaly. Raw aliases the scanner's line buffer and is
// only valid for the duration of the callback; sinks must copy it.
type Diag struct {
	Kind    DiagKind
	Line    int // 1-based physical line number
	Fields  int // observed field count (rows only)
	Columns int // header column count
	Raw     []byte
}

// DiagFunc receives scan anomalies. A nil DiagFunc disables reporting;
// anomalies never fail a scan either way.
type DiagFunc func(Diag)

// Options configure a scan. The zero value means: comma delimiter,
// DefaultMaxLineBytes, DefaultMaxColumns, no diagnostics.
type Options struct {
	// Delimiter is the field separator. Zero means ','.
	Delimiter byte

	// MaxLineBytes bounds the line buffer. Overlong lines are truncated at
	// this many bytes and the rest of the physical line is discarded.
	MaxLineBytes int

	// MaxColumns caps how many fields a line is split into.
	MaxColumns int

	// Diag, when non-nil, receives ragged-row and truncation reports.
	Diag DiagFunc
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.MaxLineBytes <= 0 {
		o.MaxLineBytes = DefaultMaxLineBytes
	}
	if o.MaxColumns <= 0 {
		o.MaxColumns = DefaultMaxColumns
	}
	return o
}

// Sniff performs the single-pass scan over r: header line establishes
// column names and count, every further line contributes type evidence,
// and the finalized schema is returned.
//
// Degenerate inputs succeed: an empty stream or an empty header line yields
// a zero-column schema. Short rows are padded with empty cells, long rows
// are cut at the header width, and malformed quoting degrades per
// SplitLine. The only errors returned are underlying read failures.
func Sniff(r io.Reader, opts Options) (schema.Schema, error) {
	opts = opts.withDefaults()
	ls := NewLineScanner(r, opts.MaxLineBytes)

	empty := schema.Schema{Columns: []string{}, Types: []infer.ColumnType{}}

	if !ls.Scan() {
		if err := ls.Err(); err != nil {
			return schema.Schema{}, fmt.Errorf("scan: read header: %w", err)
		}
		return empty, nil
	}
	header := StripBOM(ls.Bytes())
	if ls.Truncated() {
		opts.report(Diag{Kind: DiagTruncatedLine, Line: 1, Raw: header})
	}
	headFields := SplitLine(header, opts.Delimiter, nil, opts.MaxColumns)
	if len(headFields) == 0 {
		return empty, nil
	}

	// Header names must outlive the shared line buffer.
	cols := make([]string, len(headFields))
	for i, f := range headFields {
		cols[i] = string(f)
	}

	eng := infer.NewEngine(len(cols))
	var fields [][]byte
	for lineNo := 2; ls.Scan(); lineNo++ {
		line := ls.Bytes()
		if ls.Truncated() {
			opts.report(Diag{Kind: DiagTruncatedLine, Line: lineNo, Columns: len(cols), Raw: line})
		}
		fields = SplitLine(line, opts.Delimiter, fields, opts.MaxColumns)

		switch {
		case len(fields) > len(cols):
			opts.report(Diag{Kind: DiagLongRow, Line: lineNo, Fields: len(fields), Columns: len(cols), Raw: line})
		case len(fields) < len(cols) && len(fields) > 0:
			// Blank lines (zero fields) pad silently; they carry no evidence.
			opts.report(Diag{Kind: DiagShortRow, Line: lineNo, Fields: len(fields), Columns: len(cols), Raw: line})
		}

		for i := 0; i < len(cols); i++ {
			if i < len(fields) {
				eng.Observe(i, fields[i])
			}
			// Missing trailing cells are empty: no evidence, nothing to do.
		}
	}
	if err := ls.Err(); err != nil {
		return schema.Schema{}, fmt.Errorf("scan: read: %w", err)
	}

	return schema.Schema{Columns: cols, Types: eng.Finalize()}, nil
}

func (o Options) report(d Diag) {
	if o.Diag != nil {
		o.Diag(d)
	}
}

// SniffFile opens path and runs Sniff over it. Failure to open the file is
// the one fatal condition the sniffer surfaces; everything inside the file
// degrades gracefully.
func SniffFile(ctx context.Context, path string, opts Options) (schema.Schema, error) {
	select {
	case <-ctx.Done():
		return schema.Schema{}, ctx.Err()
	default:
	}
	f, err := os.Open(path)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Sniff(f, opts)
}
