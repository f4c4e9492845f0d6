// Package importer bulk-loads documents into long-term memory. It
// splits markdown files, plain text and fetched web pages into short
// passages and stores each one as a knowledge entry, letting the
// memory service drop near-duplicates.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/internal/service/memory"
	"github.com/sandevgo/membot/pkg/log"
)

// Fragments below this size carry no retrievable signal.
const minChunkTokens = 4

var importExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

type Importer struct {
	memories *memory.Service
	fetcher  *Fetcher
	cfg      ChunkerConfig
}

func New(memories *memory.Service) *Importer {
	return &Importer{
		memories: memories,
		fetcher:  NewFetcher(),
		cfg:      MemoryChunkerConfig(),
	}
}

// Stats summarizes one import run.
type Stats struct {
	Sources    int // documents read
	Scanned    int // candidate passages considered
	Inserted   int
	Duplicates int
	Skipped    int // fragments too small to keep
}

func (s *Stats) add(other Stats) {
	s.Sources += other.Sources
	s.Scanned += other.Scanned
	s.Inserted += other.Inserted
	s.Duplicates += other.Duplicates
	s.Skipped += other.Skipped
}

// ImportFile loads one document. Markdown is split at headings and
// each section title is kept as a retrieval hint on its passages.
func (i *Importer) ImportFile(ctx context.Context, path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var sections []section
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		sections = splitSections(data)
	default:
		sections = []section{{Body: string(data)}}
	}

	stats, err := i.importSections(ctx, sections, filepath.Base(path))
	if err != nil {
		return stats, err
	}
	stats.Sources = 1

	log.FromCtx(ctx).Info().
		Str("path", path).
		Int("scanned", stats.Scanned).
		Int("inserted", stats.Inserted).
		Int("duplicates", stats.Duplicates).
		Msg("Imported document")
	return stats, nil
}

// ImportDir walks dir and imports every markdown and text file.
func (i *Importer) ImportDir(ctx context.Context, dir string) (Stats, error) {
	var total Stats

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !importExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		stats, err := i.ImportFile(ctx, path)
		if err != nil {
			return err
		}
		total.add(stats)
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("failed to import %s: %w", dir, err)
	}
	return total, nil
}

// ImportURL fetches a page and imports its readable text. Heading
// structure is lost in the HTML conversion, so the page imports as a
// single section.
func (i *Importer) ImportURL(ctx context.Context, url string) (Stats, error) {
	text, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return Stats{}, err
	}

	stats, err := i.importSections(ctx, []section{{Body: text}}, url)
	if err != nil {
		return stats, err
	}
	stats.Sources = 1

	log.FromCtx(ctx).Info().
		Str("url", url).
		Int("scanned", stats.Scanned).
		Int("inserted", stats.Inserted).
		Int("duplicates", stats.Duplicates).
		Msg("Imported page")
	return stats, nil
}

func (i *Importer) importSections(ctx context.Context, sections []section, origin string) (Stats, error) {
	var stats Stats

	for _, sec := range sections {
		for _, chunk := range ChunkText(sec.Body, i.cfg) {
			stats.Scanned++

			if chunk.TokenSize < minChunkTokens {
				stats.Skipped++
				continue
			}

			content := chunk.Text
			if sec.Title != "" {
				content = sec.Title + ": " + content
			}

			_, created, err := i.memories.Remember(ctx, core.EntryDraft{
				Content: content,
				Kind:    core.KindKnowledge,
				Metadata: map[string]string{
					"source": "import",
					"origin": origin,
				},
			})
			if err != nil {
				return stats, err
			}
			if created {
				stats.Inserted++
			} else {
				stats.Duplicates++
			}
		}
	}
	return stats, nil
}
