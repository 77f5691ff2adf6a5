// Package skiplog persists the lines a load run could not ingest cleanly.
// Each diagnosed line is appended to a per-source file in tab-separated
// form so an operator can inspect, fix, and replay it later, and the
// package keeps per-reason counters for the run summary.
package skiplog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ejo6/DataWarehouse/internal/scan"
)

// Log appends diagnosed lines to a skip file. It is safe for concurrent
// use; the load pipeline calls it from multiple workers.
type Log struct {
	mu     sync.Mutex
	f      *os.File
	w      *bufio.Writer
	counts map[scan.DiagKind]int64
}

// New creates the skip directory if needed and opens a skip file for
// source. The file name combines the source base name with a timestamp,
// so repeated runs never clobber each other. The returned cleanup
// flushes and closes the file.
func New(dir, source string) (*Log, func(), error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("skiplog: dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("skiplog: mkdir %s: %w", dir, err)
	}

	base := filepath.Base(source)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "input"
	}
	name := fmt.Sprintf("%s.%s.skipped.tsv", base, time.Now().UTC().Format("20060102T150405Z"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("skiplog: create %s: %w", path, err)
	}

	l := &Log{
		f:      f,
		w:      bufio.NewWriter(f),
		counts: map[scan.DiagKind]int64{},
	}
	cleanup := func() { _ = l.Close() }
	return l, cleanup, nil
}

// Record writes one diagnosed line as kind<TAB>line<TAB>fields<TAB>raw
// and bumps the reason counter. Raw may be empty for diagnostics that
// carry no payload.
func (l *Log) Record(d scan.Diag) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[d.Kind]++
	if l.w == nil {
		return fmt.Errorf("skiplog: record after close")
	}
	if _, err := fmt.Fprintf(l.w, "%s\t%d\t%d\t%s\n", d.Kind, d.Line, d.Fields, d.Raw); err != nil {
		return fmt.Errorf("skiplog: write: %w", err)
	}
	return nil
}

// Func adapts the log into a scan.DiagFunc. Write failures are dropped;
// skip logging must never abort a load.
func (l *Log) Func() scan.DiagFunc {
	return func(d scan.Diag) { _ = l.Record(d) }
}

// Counts returns a copy of the per-reason counters.
func (l *Log) Counts() map[scan.DiagKind]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[scan.DiagKind]int64, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}

// Total returns the number of recorded diagnostics.
func (l *Log) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for _, v := range l.counts {
		n += v
	}
	return n
}

// Path returns the skip file location.
func (l *Log) Path() string {
	return l.f.Name()
}

// Close flushes and closes the skip file. Close is idempotent.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	l.w = nil
	if flushErr != nil {
		return fmt.Errorf("skiplog: flush: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("skiplog: close: %w", closeErr)
	}
	return nil
}
