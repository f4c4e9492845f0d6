// Package tokens counts text in model tokenization units. Counts are
// exact BPE counts, not character heuristics: downstream budget
// arithmetic depends on them being authoritative.
package tokens

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// MessageOverhead is the fixed structural cost of a single chat
// message: the framing tokens around role and content.
const MessageOverhead = 3

// ReplyPriming is the fixed cost of priming the assistant reply at
// the end of a message sequence.
const ReplyPriming = 3

const defaultEncoding = "cl100k_base"

var modelEncodings = map[string]string{
	"gpt-4":            "cl100k_base",
	"gpt-3.5-turbo":    "cl100k_base",
	"text-davinci-003": "p50k_base",
	"text-davinci-002": "p50k_base",
	"text-curie-001":   "p50k_base",
	"gpt2":             "r50k_base",
	"gpt-2":            "r50k_base",
}

// Versioned model names resolve by prefix, e.g. gpt-4-0613 or
// gpt-3.5-turbo-16k. Order matters: longer prefixes first.
var encodingPrefixes = []struct {
	prefix   string
	encoding string
}{
	{"gpt-3.5-turbo", "cl100k_base"},
	{"gpt-4", "cl100k_base"},
	{"text-davinci", "p50k_base"},
	{"text-curie", "p50k_base"},
}

// EncodingForModel maps a model name to its tokenizer encoding. The
// mapping is total: unknown models fall back to cl100k_base.
func EncodingForModel(model string) string {
	if enc, ok := modelEncodings[model]; ok {
		return enc
	}
	for _, p := range encodingPrefixes {
		if strings.HasPrefix(model, p.prefix) {
			return p.encoding
		}
	}
	return defaultEncoding
}

// Counter counts tokens for one model's tokenization scheme.
type Counter struct {
	model string
	enc   *tiktoken.Tiktoken
}

func NewCounter(model string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(EncodingForModel(model))
	if err != nil {
		return nil, fmt.Errorf("load encoding for model %q: %w", model, err)
	}
	return &Counter{model: model, enc: enc}, nil
}

func (c *Counter) Model() string {
	return c.model
}

// Count returns the exact token count of text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// CountMessage returns the billed cost of one chat message: the role
// and content counts plus MessageOverhead.
func (c *Counter) CountMessage(role, content string) int {
	return MessageOverhead + c.Count(role) + c.Count(content)
}
