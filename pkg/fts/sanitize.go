// Package fts prepares untrusted free text for SQLite FTS5 MATCH
// queries. Sanitize bounds and normalizes raw input; MatchExpr turns
// sanitized text into an expression the query parser cannot
// misinterpret as operators.
package fts

import "strings"

// MaxQueryLen is the hard cap on sanitized query length, in runes.
// Longer input is silently cut, which closes the cost amplification
// vector of pathologically long search terms.
const MaxQueryLen = 200

// Sanitize normalizes raw search input. It is total: any string in,
// a usable (possibly empty) string out, never an error.
//
// Rules, in order: control characters are removed (tab, newline and
// carriage return become spaces so word boundaries survive), every
// literal double quote is doubled (the FTS5 escape for a phrase
// delimiter), every '?' is stripped, and the result is truncated to
// MaxQueryLen runes. Truncation runs last so the bound holds after
// escaping; if the cut lands between a doubled quote pair, the
// dangling half is dropped as well.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			// control characters, including NUL
		case r == '?':
			// reserved by the query syntax, never a search term
		case r == '"':
			b.WriteString(`""`)
		default:
			b.WriteRune(r)
		}
	}

	s := b.String()
	runes := []rune(s)
	if len(runes) <= MaxQueryLen {
		return s
	}

	runes = runes[:MaxQueryLen]
	if countQuotes(runes)%2 != 0 {
		// The cut split a doubled quote; an odd count always means
		// the final rune is the dangling half.
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func countQuotes(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r == '"' {
			n++
		}
	}
	return n
}
