package infer

// Engine tracks one ColumnType per column index across a scan. It holds
// O(column count) state and nothing else; each scan must use its own Engine
// (the type is not safe for concurrent use).
type Engine struct {
	types []ColumnType
}

// NewEngine returns an Engine for cols columns, all starting at Unknown.
func NewEngine(cols int) *Engine {
	return &Engine{types: make([]ColumnType, cols)}
}

// Columns returns the number of tracked columns.
func (e *Engine) Columns() int { return len(e.types) }

// Observe advances column col with the evidence in cell. Empty cells and
// out-of-range indexes are ignored, and a column already at Text is left
// alone without classifying the value.
func (e *Engine) Observe(col int, cell []byte) {
	if col < 0 || col >= len(e.types) {
		return
	}
	cur := e.types[col]
	if cur == Text {
		return
	}
	t := Classify(cell)
	if t == Unknown {
		return
	}
	e.types[col] = Join(cur, t)
}

// Type returns the current classification of column col.
func (e *Engine) Type(col int) ColumnType {
	if col < 0 || col >= len(e.types) {
		return Unknown
	}
	return e.types[col]
}

// Finalize resolves every column still at Unknown to Text and returns the
// resulting types as a fresh slice. The engine itself is not mutated, so a
// caller can (in tests) finalize mid-scan snapshots.
func (e *Engine) Finalize() []ColumnType {
	out := make([]ColumnType, len(e.types))
	for i, t := range e.types {
		if t == Unknown {
			t = Text
		}
		out[i] = t
	}
	return out
}
