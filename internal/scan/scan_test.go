package scan

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ejo6/DataWarehouse/internal/infer"
)

func sniffString(t *testing.T, in string, opts Options) (cols []string, types []infer.ColumnType) {
	t.Helper()
	s, err := Sniff(strings.NewReader(in), opts)
	if err != nil {
		t.Fatalf("Sniff error: %v", err)
	}
	return s.Columns, s.Types
}

func wantTypes(t *testing.T, got []infer.ColumnType, want ...infer.ColumnType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("types[%d] = %v, want %v (full: %v vs %v)", i, got[i], want[i], got, want)
		}
	}
}

// TestSniffBasic is the canonical scenario: integer, text, and an
// integer column upgraded to real by later evidence.
func TestSniffBasic(t *testing.T) {
	t.Parallel()

	cols, types := sniffString(t, "id,name,score\n1,Alice,3.5\n2,Bob,4\n", Options{})
	if strings.Join(cols, ",") != "id,name,score" {
		t.Fatalf("columns = %v, want [id name score]", cols)
	}
	wantTypes(t, types, infer.Integer, infer.Text, infer.Real)
}

// TestSniffQuotedComma: a quoted "1,000" stays one field and is not
// numeric-shaped, so the column resolves to text.
func TestSniffQuotedComma(t *testing.T) {
	t.Parallel()

	cols, types := sniffString(t, "a,b\n\"1,000\",2\n", Options{})
	if strings.Join(cols, ",") != "a,b" {
		t.Fatalf("columns = %v, want [a b]", cols)
	}
	wantTypes(t, types, infer.Text, infer.Integer)
}

// TestSniffDegenerate covers header-only files, empty files, and an empty
// header line; all succeed.
func TestSniffDegenerate(t *testing.T) {
	t.Parallel()

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		cols, types := sniffString(t, "x,y\n", Options{})
		if strings.Join(cols, ",") != "x,y" {
			t.Fatalf("columns = %v, want [x y]", cols)
		}
		wantTypes(t, types, infer.Text, infer.Text)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		cols, types := sniffString(t, "", Options{})
		if len(cols) != 0 || len(types) != 0 {
			t.Fatalf("schema = (%v, %v), want empty", cols, types)
		}
	})

	t.Run("empty header line", func(t *testing.T) {
		t.Parallel()
		cols, types := sniffString(t, "\n1,2\n", Options{})
		if len(cols) != 0 || len(types) != 0 {
			t.Fatalf("schema = (%v, %v), want empty", cols, types)
		}
	})
}

// TestSniffEmptyColumn: a column whose every cell is empty defaults to
// text at finalization.
func TestSniffEmptyColumn(t *testing.T) {
	t.Parallel()

	_, types := sniffString(t, "a,b\n1,\n2,\n", Options{})
	wantTypes(t, types, infer.Integer, infer.Text)
}

// TestSniffShortRows: missing trailing cells are treated as empty and do
// not disturb the other columns.
func TestSniffShortRows(t *testing.T) {
	t.Parallel()

	_, types := sniffString(t, "a,b,c\n1,2,3\n4\n5,6\n", Options{})
	wantTypes(t, types, infer.Integer, infer.Integer, infer.Integer)
}

// TestSniffLongRows: excess cells are dropped and do not shift evidence
// into the wrong columns.
func TestSniffLongRows(t *testing.T) {
	t.Parallel()

	_, types := sniffString(t, "a,b\n1,2,junk,more\n3,4\n", Options{})
	wantTypes(t, types, infer.Integer, infer.Integer)
}

// TestSniffBOM: the BOM is stripped from the header only; a data line
// starting with the BOM bytes keeps them (and classifies as text).
func TestSniffBOM(t *testing.T) {
	t.Parallel()

	cols, types := sniffString(t, "\xEF\xBB\xBFid,v\n\xEF\xBB\xBF1,2\n", Options{})
	if cols[0] != "id" {
		t.Fatalf("columns[0] = %q, want %q", cols[0], "id")
	}
	wantTypes(t, types, infer.Text, infer.Integer)
}

// TestSniffBlankLines: blank data lines contribute nothing.
func TestSniffBlankLines(t *testing.T) {
	t.Parallel()

	_, types := sniffString(t, "a\n\n1\n\n", Options{})
	wantTypes(t, types, infer.Integer)
}

// TestSniffDiagnostics asserts ragged rows and truncated lines surface
// through the callback without affecting the result.
func TestSniffDiagnostics(t *testing.T) {
	t.Parallel()

	var got []Diag
	opts := Options{
		MaxLineBytes: 16,
		Diag:         func(d Diag) { got = append(got, d) },
	}
	in := "a,b\n" +
		"1,2,3\n" + // long row
		"4\n" + // short row
		"xxxxxxxxxxxxxxxxxxxxxxxxxxxx,9\n" // truncated line
	s, err := Sniff(strings.NewReader(in), opts)
	if err != nil {
		t.Fatalf("Sniff error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("schema width = %d, want 2", s.Len())
	}

	counts := map[DiagKind]int{}
	for _, d := range got {
		counts[d.Kind]++
	}
	if counts[DiagLongRow] != 1 || counts[DiagShortRow] < 1 || counts[DiagTruncatedLine] != 1 {
		t.Fatalf("diag counts = %v, want one long_row, at least one short_row, one truncated_line", counts)
	}
	for _, d := range got {
		if d.Line < 2 {
			t.Fatalf("diagnostic on header line: %+v", d)
		}
	}
}

// TestSniffIdempotent: scanning the same content twice yields an identical
// serialized schema.
func TestSniffIdempotent(t *testing.T) {
	t.Parallel()

	in := "id,who,score\n1,Alice,3.5\n2,Bob,4\n,,\n3,,9e2\n"
	first, err := Sniff(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("first Sniff error: %v", err)
	}
	second, err := Sniff(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("second Sniff error: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("scan not deterministic: %s vs %s", a, b)
	}
}

// TestSniffFile covers the one fatal path (unopenable file) and the happy
// path through the filesystem.
func TestSniffFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := SniffFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("SniffFile error: %v", err)
	}
	wantTypes(t, s.Types, infer.Integer, infer.Text)

	if _, err := SniffFile(context.Background(), filepath.Join(dir, "missing.csv"), Options{}); err == nil {
		t.Fatalf("SniffFile on missing file: error = nil, want open failure")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SniffFile(ctx, path, Options{}); err == nil {
		t.Fatalf("SniffFile with canceled context: error = nil, want ctx error")
	}
}
