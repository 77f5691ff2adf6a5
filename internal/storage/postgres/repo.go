// Package postgres implements a Postgres-backed storage.Repository using
// pgx v5. CopyFrom uses the native COPY protocol, which is the fastest
// bulk path Postgres offers.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ejo6/DataWarehouse/internal/ddl"
	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/storage"
)

func init() {
	storage.Register("postgres", storage.Backend{
		New: func(ctx context.Context, cfg storage.Config) (storage.Repository, func(), error) {
			return NewRepository(ctx, cfg)
		},
		MapType: MapType,
		Quote:   ddl.QuoteANSI,
	})
}

// MapType maps a sniffed type onto a Postgres column type. Integers get
// BIGINT so large identifiers survive; reals get DOUBLE PRECISION.
func MapType(t infer.ColumnType) string {
	switch t {
	case infer.Integer:
		return "BIGINT"
	case infer.Real:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// NewRepository opens a pgx pool and returns a Repository plus a close
// function for cleanup.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, pool.Close, nil
}

// Exec executes an arbitrary statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// CopyFrom streams rows into the configured table via COPY.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	ident := tableIdent(r.cfg.Table)
	n, err := r.pool.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", r.cfg.Table, err)
	}
	return n, nil
}

// tableIdent converts a dotted table name into a pgx identifier.
func tableIdent(table string) pgx.Identifier {
	parts := strings.Split(table, ".")
	out := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
