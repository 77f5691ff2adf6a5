package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxIdentLen matches PostgreSQL's identifier limit, the tightest of the
// supported backends.
const maxIdentLen = 63

// NormalizeColumn converts arbitrary header text into a lowercase ASCII
// identifier suitable for SQL schemas:
//  1. lowercase and trim
//  2. strip accents (NFD, drop nonspacing marks, NFC)
//  3. keep [a-z0-9_]; space, dash, and dot become underscore; drop the rest
//  4. fall back to "col" when nothing survives
//
// Names longer than 63 bytes keep their first 10 and last 53 characters so
// distinguishing suffixes survive truncation.
func NormalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	if len(name) > maxIdentLen {
		name = name[:10] + name[len(name)-(maxIdentLen-10):]
	}
	return name
}
