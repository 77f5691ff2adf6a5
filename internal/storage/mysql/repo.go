// Package mysql implements a MySQL-backed storage.Repository using
// database/sql with the go-sql-driver. CopyFrom batches rows into
// multi-row INSERT statements, the practical bulk path when LOAD DATA
// LOCAL is unavailable.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/ejo6/DataWarehouse/internal/ddl"
	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/storage"
)

func init() {
	storage.Register("mysql", storage.Backend{
		New: func(ctx context.Context, cfg storage.Config) (storage.Repository, func(), error) {
			return NewRepository(ctx, cfg)
		},
		MapType: MapType,
		Quote:   QuoteIdent,
	})
}

// maxInsertRows bounds one multi-row INSERT so the statement stays well
// under MySQL's default max_allowed_packet.
const maxInsertRows = 500

// MapType maps a sniffed type onto a MySQL column type.
func MapType(t infer.ColumnType) string {
	switch t {
	case infer.Integer:
		return "BIGINT"
	case infer.Real:
		return "DOUBLE"
	default:
		return "TEXT"
	}
}

// QuoteIdent quotes an identifier with backticks, escaping embedded
// backticks.
func QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository validates the DSN, opens a connection, and returns a
// Repository plus a close function for cleanup.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, func(), error) {
	if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mysql: dsn: %w", err)
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, func() { _ = db.Close() }, nil
}

// Exec executes an arbitrary statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// CopyFrom inserts rows in multi-row INSERT chunks inside a transaction.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin tx: %w", err)
	}

	var inserted int64
	for start := 0; start < len(rows); start += maxInsertRows {
		end := start + maxInsertRows
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		stmt, args, err := multiInsertSQL(r.cfg.Table, columns, chunk)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("mysql: insert chunk: %w", err)
		}
		inserted += int64(len(chunk))
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mysql: commit: %w", err)
	}
	return inserted, nil
}

// multiInsertSQL builds INSERT INTO `t` (`a`,`b`) VALUES (?,?),(?,?),...
// plus its flattened argument list.
func multiInsertSQL(table string, columns []string, rows [][]any) (string, []any, error) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdent(c)
	}
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(ddl.QuoteTable(table, QuoteIdent))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ","))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, r := range rows {
		if len(r) != len(columns) {
			return "", nil, fmt.Errorf("mysql: CopyFrom: row length %d != columns length %d", len(r), len(columns))
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(row)
		args = append(args, r...)
	}
	return sb.String(), args, nil
}
