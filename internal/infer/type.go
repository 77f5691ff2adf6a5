// Package infer implements the per-column type lattice used by the CSV
// schema sniffer. Columns start at Unknown and only ever move toward more
// general types as evidence arrives:
//
//	Unknown < Integer < Real < Text
//
// Classification is total: any cell value resolves to Integer, Real, or
// Text, and a column that has reached Text never changes again. Empty cells
// carry no evidence and leave the column untouched.
package infer

// ColumnType is a coarse column classification ordered by generality.
// The zero value is Unknown.
type ColumnType uint8

const (
	// Unknown means no non-empty cell has been observed for the column yet.
	Unknown ColumnType = iota
	// Integer means every non-empty cell so far was integer-shaped.
	Integer
	// Real means every non-empty cell so far was numeric, and at least one
	// was real-shaped (fractional part or exponent).
	Real
	// Text is the absorbing top of the lattice.
	Text
)

// String returns the SQL-style label for t. Unknown stringifies as
// "UNKNOWN"; finalized schemas never contain it.
func (t ColumnType) String() string {
	switch t {
	case Unknown:
		return "UNKNOWN"
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Join returns the least upper bound of a and b in the lattice. Because the
// order is total, the join is simply the more general of the two.
func Join(a, b ColumnType) ColumnType {
	if a > b {
		return a
	}
	return b
}
