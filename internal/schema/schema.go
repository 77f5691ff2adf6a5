// Package schema defines the sniffed schema model and its JSON wire form,
// plus the column-name normalization used when a schema is turned into a
// table definition for the import pipeline.
package schema

import (
	"bytes"
	"encoding/json"

	"github.com/ejo6/DataWarehouse/internal/infer"
)

// Schema is the ordered result of one scan: column names in header order
// and one finalized type per column. It is produced once at end of scan and
// not mutated afterwards.
type Schema struct {
	Columns []string
	Types   []infer.ColumnType
}

// Len returns the column count.
func (s Schema) Len() int { return len(s.Columns) }

// MarshalJSON emits the wire form consumed by the import pipeline:
//
//	{"columns":["id","name"],"types":["INTEGER","TEXT"]}
//
// Both arrays preserve header order and have identical length. Column
// names are JSON-escaped; types are the labels INTEGER, REAL, or TEXT
// (anything unresolved serializes defensively as TEXT).
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"columns":[`)
	for i, c := range s.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		nb, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(nb)
	}
	buf.WriteString(`],"types":[`)
	for i, t := range s.Types {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(label(t))
		buf.WriteByte('"')
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// label collapses the lattice onto the three wire labels.
func label(t infer.ColumnType) string {
	switch t {
	case infer.Integer:
		return "INTEGER"
	case infer.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}
