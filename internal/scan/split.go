// Package scan contains the single-pass CSV scanning core: a tolerant
// record splitter, UTF-8 BOM handling, a bounded line reader, and the
// driver that combines them with the type lattice into a sniffed schema.
//
// The standard library csv.Reader is intentionally strict; this splitter
// instead mirrors the permissive rules the import pipeline expects:
// unbalanced quotes, trailing garbage after a closing quote, and ragged
// rows all degrade gracefully instead of aborting a scan.
package scan

// SplitLine splits one physical line (no trailing terminator) into fields
// on the single-byte delimiter delim, appending to dst and returning the
// result. Passing a previous result as dst[:0] lets callers reuse the
// backing array across lines.
//
// Rules:
//   - A field starting with '"' is quoted: it ends at the first unescaped
//     quote, a doubled quote ("") decodes to one literal quote, and any
//     bytes between the closing quote and the next delimiter are skipped.
//   - An unquoted field runs verbatim to the next delimiter or end of line.
//   - A trailing delimiter yields one final empty field.
//   - An empty line yields zero fields.
//   - A quoted field left open at end of line consumes the rest of the
//     line as its content.
//   - When maxFields > 0 splitting stops at the cap; excess input is not
//     split further.
//
// Fields are subslices of line except when a doubled quote forces an
// unescaping copy, so they are only valid until the caller reuses the line
// buffer. SplitLine never fails.
func SplitLine(line []byte, delim byte, dst [][]byte, maxFields int) [][]byte {
	fields := dst[:0]
	if len(line) == 0 {
		return fields
	}
	i := 0
	for {
		if maxFields > 0 && len(fields) >= maxFields {
			return fields
		}
		var field []byte
		if i < len(line) && line[i] == '"' {
			field, i = scanQuoted(line, i+1)
			// Tolerate garbage between the closing quote and the delimiter.
			for i < len(line) && line[i] != delim {
				i++
			}
		} else {
			start := i
			for i < len(line) && line[i] != delim {
				i++
			}
			field = line[start:i]
		}
		fields = append(fields, field)
		if i >= len(line) {
			return fields
		}
		i++ // consume delimiter
		if i == len(line) {
			if maxFields <= 0 || len(fields) < maxFields {
				fields = append(fields, line[len(line):])
			}
			return fields
		}
	}
}

// scanQuoted scans a quoted field whose opening quote sits at line[i-1].
// It returns the decoded content and the index just past the closing quote
// (or len(line) when the field is unterminated).
func scanQuoted(line []byte, i int) ([]byte, int) {
	start := i
	for i < len(line) {
		if line[i] != '"' {
			i++
			continue
		}
		if i+1 < len(line) && line[i+1] == '"' {
			return scanQuotedEscaped(line, start, i)
		}
		return line[start:i], i + 1
	}
	// Unterminated quote: best effort, the rest of the line is the field.
	return line[start:], i
}

// scanQuotedEscaped handles the rare doubled-quote path. It copies the
// already-scanned prefix line[start:i] and decodes the remainder, so the
// returned field no longer aliases the line buffer.
func scanQuotedEscaped(line []byte, start, i int) ([]byte, int) {
	buf := make([]byte, 0, len(line)-start)
	buf = append(buf, line[start:i]...)
	for i < len(line) {
		c := line[i]
		if c != '"' {
			buf = append(buf, c)
			i++
			continue
		}
		if i+1 < len(line) && line[i+1] == '"' {
			buf = append(buf, '"')
			i += 2
			continue
		}
		i++ // closing quote
		return buf, i
	}
	return buf, i
}
