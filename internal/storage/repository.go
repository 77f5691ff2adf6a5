// Package storage contains the storage-agnostic contracts for the import
// pipeline: a narrow Repository interface plus a registry of backends.
// Concrete backends (SQLite, Postgres, MSSQL, MySQL) live in subpackages
// and register themselves on import; cmd binaries blank-import
// storage/all to compile in every backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ejo6/DataWarehouse/internal/ddl"
)

// Config holds the connection and target-table settings shared by all
// backends.
type Config struct {
	// DSN is the backend connection string.
	DSN string

	// Table is the target table name; dotted names are allowed where the
	// backend supports schemas (e.g. "public.events").
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}

// Repository is the sink the import pipeline writes to. Exec runs DDL;
// CopyFrom bulk-inserts rows aligned to the columns order and returns the
// number of rows inserted.
type Repository interface {
	Exec(ctx context.Context, sql string) error
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
}

// Backend bundles everything the pipeline needs from one storage kind.
type Backend struct {
	// New opens a Repository and returns a cleanup function.
	New func(ctx context.Context, cfg Config) (Repository, func(), error)

	// MapType maps a sniffed column type to this backend's column type.
	MapType ddl.TypeMapper

	// Quote quotes a single identifier in this backend's dialect.
	Quote func(string) string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register installs a backend under kind. It panics on duplicates, which
// only happen on programmer error at init time.
func Register(kind string, b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic("storage: duplicate backend registration: " + kind)
	}
	if b.New == nil || b.MapType == nil || b.Quote == nil {
		panic("storage: incomplete backend registration: " + kind)
	}
	registry[kind] = b
}

// Lookup returns the backend registered as kind.
func Lookup(kind string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[kind]
	if !ok {
		return Backend{}, fmt.Errorf("storage: unknown backend %q (registered: %v)", kind, kindsLocked())
	}
	return b, nil
}

// Kinds lists registered backend names, sorted.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return kindsLocked()
}

func kindsLocked() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
