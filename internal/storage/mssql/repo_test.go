package mssql

import (
	"testing"

	"github.com/ejo6/DataWarehouse/internal/infer"
)

func TestMapType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   infer.ColumnType
		want string
	}{
		{infer.Integer, "BIGINT"},
		{infer.Real, "FLOAT"},
		{infer.Text, "NVARCHAR(MAX)"},
		{infer.Unknown, "NVARCHAR(MAX)"},
	}
	for _, tt := range tests {
		if got := MapType(tt.in); got != tt.want {
			t.Errorf("MapType(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteIdent(t *testing.T) {
	t.Parallel()
	if got := QuoteIdent("id"); got != "[id]" {
		t.Errorf("QuoteIdent(id) = %q", got)
	}
	if got := QuoteIdent("we]ird"); got != "[we]]ird]" {
		t.Errorf("QuoteIdent escaping = %q", got)
	}
}

func TestBulkTableName(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"events", "events"},
		{"dbo.events", "dbo.events"},
		{" dbo . events ", "dbo.events"},
		{"..events", "events"},
	}
	for _, tt := range tests {
		if got := bulkTableName(tt.in); got != tt.want {
			t.Errorf("bulkTableName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
