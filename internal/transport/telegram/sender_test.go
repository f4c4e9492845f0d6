package telegram

import (
	"strings"
	"testing"
)

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{
			name:   "short text stays whole",
			text:   "hello",
			maxLen: 10,
			want:   []string{"hello"},
		},
		{
			name:   "splits at newline when available",
			text:   "first line\nsecond line",
			maxLen: 15,
			want:   []string{"first line", "second line"},
		},
		{
			name:   "hard split without newlines",
			text:   strings.Repeat("a", 25),
			maxLen: 10,
			want: []string{
				strings.Repeat("a", 10),
				strings.Repeat("a", 10),
				strings.Repeat("a", 5),
			},
		},
		{
			name:   "early newline is ignored as a break point",
			text:   "ab\n" + strings.Repeat("c", 17),
			maxLen: 10,
			want: []string{
				"ab\n" + strings.Repeat("c", 7),
				strings.Repeat("c", 10),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitHTML(tt.text, tt.maxLen)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %#v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
				if len(got[i]) > tt.maxLen {
					t.Errorf("chunk %d exceeds max length: %d > %d", i, len(got[i]), tt.maxLen)
				}
			}
		})
	}
}
