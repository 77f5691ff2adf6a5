package infer

// Classify maps a single cell value to its shape in the lattice.
//
// A length-zero cell returns Unknown ("no evidence"); note that a cell of
// only whitespace is not empty and classifies as Text. Otherwise the value
// is matched, with surrounding ASCII whitespace ignored, against:
//
//   - integer-shaped: optional sign, one or more decimal digits
//   - real-shaped: optional sign, digits with at most one decimal point
//     (at least one digit overall), optional e/E exponent with optional
//     sign and mandatory digits
//
// Anything else is Text. Classify never fails.
func Classify(cell []byte) ColumnType {
	if len(cell) == 0 {
		return Unknown
	}
	if integerShaped(cell) {
		return Integer
	}
	if realShaped(cell) {
		return Real
	}
	return Text
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func skipSpace(s []byte, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func integerShaped(s []byte) bool {
	i := skipSpace(s, 0)
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	dig := false
	for i < len(s) && isDigit(s[i]) {
		dig = true
		i++
	}
	return dig && skipSpace(s, i) == len(s)
}

func realShaped(s []byte) bool {
	i := skipSpace(s, 0)
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	dig := false
	for i < len(s) && isDigit(s[i]) {
		dig = true
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			dig = true
			i++
		}
	}
	if !dig {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDig := false
		for i < len(s) && isDigit(s[i]) {
			expDig = true
			i++
		}
		if !expDig {
			return false
		}
	}
	return skipSpace(s, i) == len(s)
}
