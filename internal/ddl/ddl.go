// Package ddl turns a sniffed schema into a database-agnostic table
// definition and renders CREATE TABLE statements from it. Backend-specific
// concerns stay out: type mapping and identifier quoting are supplied by
// the storage backends.
package ddl

import (
	"fmt"
	"strings"

	"github.com/ejo6/DataWarehouse/internal/infer"
	"github.com/ejo6/DataWarehouse/internal/schema"
)

// ColumnDef describes a single column of a table to be created.
type ColumnDef struct {
	// Name is the logical column name, unquoted; quoting happens at render
	// time.
	Name string

	// SQLType is the backend column type (e.g. TEXT, BIGINT).
	SQLType string

	// NotNull adds a NOT NULL constraint. Sniffed columns are nullable;
	// the flag exists for callers that enrich the definition.
	NotNull bool
}

// TableDef holds a table name (dotted segments allowed, e.g. "main.events")
// and an ordered column list.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// TypeMapper maps a lattice type onto a backend column type.
type TypeMapper func(infer.ColumnType) string

// FromSchema derives a TableDef from a sniffed schema. Column names go
// through schema.NormalizeColumn and are then de-duplicated with numeric
// suffixes, since two distinct headers (e.g. "a b" and "a-b") can normalize
// to the same identifier. Column order follows header order.
func FromSchema(table string, s schema.Schema, mapType TypeMapper) (TableDef, error) {
	if strings.TrimSpace(table) == "" {
		return TableDef{}, fmt.Errorf("ddl: missing table name")
	}
	if mapType == nil {
		return TableDef{}, fmt.Errorf("ddl: missing type mapper")
	}
	if s.Len() == 0 {
		return TableDef{}, fmt.Errorf("ddl: schema for table %s has no columns", table)
	}

	seen := make(map[string]int, s.Len())
	defs := make([]ColumnDef, 0, s.Len())
	for i, raw := range s.Columns {
		name := schema.NormalizeColumn(raw)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name]++
		defs = append(defs, ColumnDef{
			Name:    name,
			SQLType: mapType(s.Types[i]),
		})
	}
	return TableDef{Name: table, Columns: defs}, nil
}

// QuoteANSI quotes an identifier with double quotes, doubling embedded
// quotes. It is correct for SQLite and Postgres; MSSQL and MySQL supply
// their own quoters.
func QuoteANSI(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// BuildCreateTableSQL renders a CREATE TABLE IF NOT EXISTS statement:
//
//	CREATE TABLE IF NOT EXISTS "t" (
//	  "col1" TYPE [NOT NULL],
//	  "col2" TYPE
//	);
//
// Dotted table names are quoted per segment. quote handles identifier
// quoting; pass ddl.QuoteANSI for SQLite/Postgres.
func BuildCreateTableSQL(t TableDef, quote func(string) string) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}
	if quote == nil {
		quote = QuoteANSI
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cn := strings.TrimSpace(c.Name)
		if cn == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", name)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQLType", cn)
		}
		var sb strings.Builder
		sb.WriteString(quote(cn))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteDotted(name, quote),
		strings.Join(cols, ",\n  "),
	), nil
}

// QuoteTable quotes a possibly-dotted table name, one segment at a time,
// using the backend's identifier quoter.
func QuoteTable(name string, quote func(string) string) string {
	if quote == nil {
		quote = QuoteANSI
	}
	return quoteDotted(name, quote)
}

// quoteDotted quotes each non-empty dot-separated segment of a table name.
func quoteDotted(name string, quote func(string) string) string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quote(p))
	}
	return strings.Join(out, ".")
}
