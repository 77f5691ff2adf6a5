package scan

import (
	"bytes"
	"testing"
)

// TestStripBOM verifies the BOM is removed only when it is the exact
// three-byte UTF-8 sequence at the start of the line.
func TestStripBOM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{name: "bom stripped", in: []byte("\xEF\xBB\xBFid,name"), want: []byte("id,name")},
		{name: "no bom untouched", in: []byte("id,name"), want: []byte("id,name")},
		{name: "partial bom untouched", in: []byte("\xEF\xBBid"), want: []byte("\xEF\xBBid")},
		{name: "bom mid-line untouched", in: []byte("id\xEF\xBB\xBF"), want: []byte("id\xEF\xBB\xBF")},
		{name: "empty", in: []byte{}, want: []byte{}},
		{name: "bom only", in: []byte("\xEF\xBB\xBF"), want: []byte{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripBOM(tt.in); !bytes.Equal(got, tt.want) {
				t.Fatalf("StripBOM(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
