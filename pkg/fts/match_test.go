package fts

import "testing"

func TestMatchExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single term",
			input:    "hello",
			expected: `"hello"`,
		},
		{
			name:     "terms joined as implicit AND",
			input:    "hello big world",
			expected: `"hello" "big" "world"`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "operator words are neutralized by quoting",
			input:    "cats AND dogs OR birds NOT fish",
			expected: `"cats" "AND" "dogs" "OR" "birds" "NOT" "fish"`,
		},
		{
			name:     "punctuation-only tokens dropped",
			input:    "hello - * ^ world",
			expected: `"hello" "world"`,
		},
		{
			name:     "escaped quotes stay balanced inside a token",
			input:    `say ""hi""`,
			expected: `"say" """hi"""`,
		},
		{
			name:     "column filter syntax becomes a literal phrase",
			input:    "content:secret",
			expected: `"content:secret"`,
		},
		{
			name:     "unicode terms survive",
			input:    "меня зовут",
			expected: `"меня" "зовут"`,
		},
		{
			name:     "digits count as matchable",
			input:    "version 42",
			expected: `"version" "42"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchExpr(tt.input)
			if got != tt.expected {
				t.Errorf("MatchExpr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// The composition Sanitize -> MatchExpr must yield either an empty
// expression or one with balanced quoting, for any raw input.
func TestMatchExprAfterSanitize(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`"`,
		`unterminated "phrase`,
		`a"b c"d`,
		"? ?? ???",
		"\x00\x01",
		`-- ; DROP TABLE memories`,
		"(a OR b) NEAR/2 c",
	}

	for _, input := range inputs {
		expr := MatchExpr(Sanitize(input))
		quotes := 0
		for _, r := range expr {
			if r == '"' {
				quotes++
			}
		}
		if quotes%2 != 0 {
			t.Errorf("input %q: unbalanced quotes in expression %q", input, expr)
		}
	}
}
