// Package file implements a local filesystem-backed data source, plus a
// helper for reading line-based list files of input paths.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Local is a data source that opens one file from the local disk. It is
// safe for concurrent use; each Open returns an independent handle.
type Local struct{ path string }

// NewLocal returns a Local source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the bound filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading. A context that is already
// done short-circuits without touching the filesystem. Filesystem errors
// are wrapped with the path while keeping errors.Is(err, os.ErrNotExist)
// usable.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// ReadList reads a text file line by line and returns the non-empty,
// non-comment lines in order. Lines are trimmed; '#' starts a comment
// line. Useful for maintaining lists of CSV inputs with blank separators.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}
	return out, nil
}
