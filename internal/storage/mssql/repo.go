// Package mssql implements a SQL Server-backed storage.Repository using
// the go-mssqldb bulk copy API: CopyFrom prepares a mssql.CopyIn
// statement inside a transaction and streams rows through it.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/storage"
)

func init() {
	storage.Register("mssql", storage.Backend{
		New: func(ctx context.Context, cfg storage.Config) (storage.Repository, func(), error) {
			return NewRepository(ctx, cfg)
		},
		MapType: MapType,
		Quote:   QuoteIdent,
	})
}

// MapType maps a sniffed type onto a SQL Server column type.
func MapType(t infer.ColumnType) string {
	switch t {
	case infer.Integer:
		return "BIGINT"
	case infer.Real:
		return "FLOAT"
	default:
		return "NVARCHAR(MAX)"
	}
}

// QuoteIdent quotes an identifier with brackets, escaping embedded
// closing brackets.
func QuoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository validates the DSN, opens a connection, and returns a
// Repository plus a close function for cleanup.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, func(), error) {
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, func() { _ = db.Close() }, nil
}

// Exec executes an arbitrary statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mssql: exec: %w", err)
	}
	return nil
}

// CopyFrom bulk-inserts rows using the driver's CopyIn statement. The
// final parameterless Exec flushes the bulk operation and reports the
// row count.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mssql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mssql: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(bulkTableName(r.cfg.Table), mssql.BulkOptions{}, columns...))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: prepare bulk copy: %w", err)
	}

	for _, row := range rows {
		if len(row) != len(columns) {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("mssql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("mssql: bulk row: %w", err)
		}
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: bulk flush: %w", err)
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: close bulk stmt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mssql: commit: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		n = int64(len(rows))
	}
	return n, nil
}

// bulkTableName strips whitespace around dotted segments; CopyIn quotes
// the name itself.
func bulkTableName(table string) string {
	parts := strings.Split(table, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}
