package importer

import (
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		cfg            ChunkerConfig
		expectedChunks []string
	}{
		{
			name:           "empty input",
			text:           "",
			cfg:            MemoryChunkerConfig(),
			expectedChunks: nil,
		},
		{
			name:           "whitespace only",
			text:           "   \n\t   ",
			cfg:            MemoryChunkerConfig(),
			expectedChunks: nil,
		},
		{
			name: "single sentence fits",
			text: "Hello world.",
			cfg: ChunkerConfig{
				MaxTokens: 10,
			},
			expectedChunks: []string{"Hello world."},
		},
		{
			name: "two sentences fit in one chunk",
			text: "Hello world. How are you?",
			cfg: ChunkerConfig{
				MaxTokens: 10,
			},
			expectedChunks: []string{"Hello world. How are you?"},
		},
		{
			name: "split on sentence boundary",
			text: "First sentence. Second sentence.",
			cfg: ChunkerConfig{
				// "First sentence." is 3 tokens: [First][ sentence][.]
				MaxTokens: 3,
			},
			expectedChunks: []string{
				"First sentence.",
				"Second sentence.",
			},
		},
		{
			name: "split with overlap carries previous sentence",
			text: "Sentence one. Sentence two. Sentence three.",
			cfg: ChunkerConfig{
				MaxTokens:     6,
				OverlapTokens: 3,
			},
			expectedChunks: []string{
				"Sentence one. Sentence two.",
				"Sentence two. Sentence three.",
			},
		},
		{
			name: "long sentence forced split",
			text: "One two three four five six.",
			cfg: ChunkerConfig{
				MaxTokens: 3,
			},
			// Token positions, not word positions: the trailing period
			// is its own token.
			expectedChunks: []string{
				"One two three",
				"four five six",
				".",
			},
		},
		{
			name: "soft wraps unwrap inside a paragraph",
			text: "Hello\nworld.",
			cfg: ChunkerConfig{
				MaxTokens: 10,
			},
			expectedChunks: []string{"Hello world."},
		},
		{
			name: "paragraphs split before sentences",
			text: "Para one.\n\nPara two.",
			cfg: ChunkerConfig{
				MaxTokens: 3,
			},
			expectedChunks: []string{
				"Para one.",
				"Para two.",
			},
		},
		{
			name: "cyrillic sentences",
			text: "Привет мир. Как твои дела?",
			cfg: ChunkerConfig{
				MaxTokens: 10,
			},
			expectedChunks: []string{
				"Привет мир.",
				"Как твои дела?",
			},
		},
		{
			name: "decimal point does not end a sentence",
			text: "Pi is 3.14 roughly. Tau is double.",
			cfg: ChunkerConfig{
				// The first sentence alone fills the budget.
				MaxTokens: 7,
			},
			expectedChunks: []string{
				"Pi is 3.14 roughly.",
				"Tau is double.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, tt.cfg)

			if len(chunks) != len(tt.expectedChunks) {
				t.Fatalf("got %d chunks, want %d: %#v", len(chunks), len(tt.expectedChunks), chunks)
			}
			for i, chunk := range chunks {
				if chunk.Text != tt.expectedChunks[i] {
					t.Errorf("chunk %d = %q, want %q", i, chunk.Text, tt.expectedChunks[i])
				}
				if chunk.Index != i {
					t.Errorf("chunk %d has index %d", i, chunk.Index)
				}
				if chunk.TokenSize <= 0 {
					t.Errorf("chunk %d has token size %d", i, chunk.TokenSize)
				}
			}
		})
	}
}
