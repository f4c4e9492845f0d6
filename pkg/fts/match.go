package fts

import (
	"strings"
	"unicode"
)

// MatchExpr builds an FTS5 MATCH expression from sanitized query
// text. Each whitespace-delimited token is wrapped in double quotes
// so the parser treats it as a plain phrase and never as an operator
// (AND, OR, NOT, NEAR, column filters, prefix stars). Tokens that
// contain no letter or digit are dropped: the tokenizer has nothing
// to match in them. Tokens are joined with spaces, which FTS5 reads
// as implicit AND.
//
// Input must come from Sanitize; its quote-doubling is what keeps the
// per-token quoting balanced. An empty result means "match nothing"
// and must not be sent to the engine.
func MatchExpr(sanitized string) string {
	words := strings.Fields(sanitized)
	if len(words) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if !hasAlnum(w) {
			continue
		}
		quoted = append(quoted, `"`+w+`"`)
	}
	return strings.Join(quoted, " ")
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
