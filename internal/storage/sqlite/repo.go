// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. SQLite has no dedicated bulk-load API, so CopyFrom runs
// batched INSERTs inside a single transaction, which keeps performance
// acceptable for moderate volumes. This is the default warehouse backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // CGo-free driver

	"github.com/ejo6/DataWarehouse/internal/ddl"
	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/storage"
)

func init() {
	storage.Register("sqlite", storage.Backend{
		New: func(ctx context.Context, cfg storage.Config) (storage.Repository, func(), error) {
			return NewRepository(ctx, cfg)
		},
		MapType: MapType,
		Quote:   ddl.QuoteANSI,
	})
}

// MapType maps a sniffed type onto a SQLite column affinity. The labels
// match what the sniffer itself reports, so a table created from a sniff
// result round-trips exactly.
func MapType(t infer.ColumnType) string {
	switch t {
	case infer.Integer:
		return "INTEGER"
	case infer.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository opens a SQLite connection using the configured DSN and
// returns a Repository plus a close function for cleanup.
//
// The DSN is passed to database/sql as-is; both plain paths ("wh.db") and
// URI form ("file:wh.db?cache=shared") work.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")

	return &Repository{db: db, cfg: cfg}, func() { db.Close() }, nil
}

// Exec executes an arbitrary statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// CopyFrom inserts rows into the configured table within one transaction
// using a prepared single-row INSERT. Every row must match the columns
// width.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	stmtSQL := insertSQL(r.cfg.Table, columns)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// insertSQL builds INSERT INTO "t" ("a", "b") VALUES (?, ?).
func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = ddl.QuoteANSI(c)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		ddl.QuoteTable(table, ddl.QuoteANSI),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}
