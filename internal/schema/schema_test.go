package schema

import (
	"encoding/json"
	"testing"

	"github.com/ejo6/DataWarehouse/internal/infer"
)

// TestMarshalJSON pins the exact wire shape, including ordering and the
// empty-schema form.
func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Schema
		want string
	}{
		{
			name: "basic",
			in: Schema{
				Columns: []string{"id", "name", "score"},
				Types:   []infer.ColumnType{infer.Integer, infer.Text, infer.Real},
			},
			want: `{"columns":["id","name","score"],"types":["INTEGER","TEXT","REAL"]}`,
		},
		{
			name: "empty",
			in:   Schema{Columns: []string{}, Types: []infer.ColumnType{}},
			want: `{"columns":[],"types":[]}`,
		},
		{
			name: "zero value",
			in:   Schema{},
			want: `{"columns":[],"types":[]}`,
		},
		{
			name: "escaped name",
			in: Schema{
				Columns: []string{`we"ird\col`},
				Types:   []infer.ColumnType{infer.Text},
			},
			want: `{"columns":["we\"ird\\col"],"types":["TEXT"]}`,
		},
		{
			name: "unknown serializes as text",
			in: Schema{
				Columns: []string{"x"},
				Types:   []infer.ColumnType{infer.Unknown},
			},
			want: `{"columns":["x"],"types":["TEXT"]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestMarshalJSONParallelArrays re-decodes the output and checks the two
// arrays always align in length and order.
func TestMarshalJSONParallelArrays(t *testing.T) {
	t.Parallel()

	in := Schema{
		Columns: []string{"a", "b", "c", "d"},
		Types:   []infer.ColumnType{infer.Real, infer.Integer, infer.Text, infer.Integer},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var out struct {
		Columns []string `json:"columns"`
		Types   []string `json:"types"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("round-trip decode: %v", err)
	}
	if len(out.Columns) != len(out.Types) || len(out.Columns) != 4 {
		t.Fatalf("array lengths %d/%d, want 4/4", len(out.Columns), len(out.Types))
	}
	if out.Types[0] != "REAL" || out.Types[3] != "INTEGER" {
		t.Fatalf("types order not preserved: %v", out.Types)
	}
}
