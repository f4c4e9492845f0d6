package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/fts"
	"github.com/sandevgo/membot/pkg/log"
)

const (
	minSearchLimit  = 1
	maxSearchLimit  = 100
	defaultListSize = 50

	// maxContentLen bounds a single memory in runes. Memories are
	// short facts; anything longer belongs in the importer, which
	// chunks well below this.
	maxContentLen = 4096
)

// MemoriesRepo stores long-term memory entries and serves ranked
// full-text lookups over them.
//
// Writes are serialized so a memory row and its index entry are never
// observed out of step; the FTS index itself is maintained by
// triggers inside the same implicit transaction as the row change.
type MemoriesRepo struct {
	db      *sql.DB
	writeMu sync.Mutex
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

func (r *MemoriesRepo) Insert(ctx context.Context, draft core.EntryDraft) (core.MemoryEntry, error) {
	content := normalizeContent(draft.Content)
	if content == "" {
		return core.MemoryEntry{}, &core.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return core.MemoryEntry{}, &core.ValidationError{Field: "content", Reason: "exceeds maximum length"}
	}
	if !core.ValidKind(draft.Kind) {
		return core.MemoryEntry{}, &core.ValidationError{Field: "kind", Reason: "unknown kind " + string(draft.Kind)}
	}

	entry := core.MemoryEntry{
		Content:   content,
		Kind:      draft.Kind,
		CreatedAt: time.Now().UTC(),
		Metadata:  draft.Metadata,
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO memories (content, kind, created_at, metadata) VALUES (?, ?, ?, ?)`,
		entry.Content, string(entry.Kind), entry.CreatedAt.Format(time.RFC3339), encodeMetadata(entry.Metadata))
	if err != nil {
		return core.MemoryEntry{}, &core.StorageError{Op: "insert memory", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.MemoryEntry{}, &core.StorageError{Op: "insert memory", Err: err}
	}
	entry.ID = id

	log.FromCtx(ctx).Debug().
		Int64("id", entry.ID).
		Str("kind", string(entry.Kind)).
		Msg("Memory stored")

	return entry, nil
}

// Search runs a ranked full-text lookup. The raw query is sanitized
// and compiled into a quoted match expression first, so user input can
// never reach the FTS engine as syntax. A query that sanitizes down to
// nothing matches nothing.
func (r *MemoriesRepo) Search(ctx context.Context, query core.SearchQuery) ([]core.SearchResult, error) {
	expr := fts.MatchExpr(fts.Sanitize(query.Query))
	if expr == "" {
		return nil, nil
	}

	limit := query.Limit
	if limit == 0 {
		limit = core.DefaultSearchLimit
	}
	limit = min(max(limit, minSearchLimit), maxSearchLimit)

	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.content, m.kind, m.created_at, m.metadata, bm25(memories_fts) AS rank_score
		FROM memories_fts
		JOIN memories m ON m.id = memories_fts.rowid
		WHERE memories_fts MATCH ?
		ORDER BY rank_score
		LIMIT ?`,
		expr, limit)
	if err != nil {
		return nil, &core.StorageError{Op: "search memories", Err: err}
	}
	defer rows.Close()

	var results []core.SearchResult
	for rows.Next() {
		var (
			entry     core.MemoryEntry
			kind      string
			createdAt string
			metadata  string
			score     float64
		)
		if err := rows.Scan(&entry.ID, &entry.Content, &kind, &createdAt, &metadata, &score); err != nil {
			return nil, &core.StorageError{Op: "search memories", Err: err}
		}
		entry.Kind = core.Kind(kind)
		entry.CreatedAt = parseTime(createdAt)
		entry.Metadata = decodeMetadata(metadata)

		if query.MinScore != nil && !core.ScoreWithin(score, *query.MinScore) {
			continue
		}
		results = append(results, core.SearchResult{Entry: entry, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "search memories", Err: err}
	}

	return results, nil
}

func (r *MemoriesRepo) Delete(ctx context.Context, id int64) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return &core.StorageError{Op: "delete memory", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &core.StorageError{Op: "delete memory", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	log.FromCtx(ctx).Debug().Int64("id", id).Msg("Memory deleted")
	return nil
}

// List returns the most recently stored entries, newest first.
func (r *MemoriesRepo) List(ctx context.Context, limit int) ([]core.MemoryEntry, error) {
	if limit <= 0 {
		limit = defaultListSize
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, kind, created_at, metadata
		FROM memories
		ORDER BY id DESC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, &core.StorageError{Op: "list memories", Err: err}
	}
	defer rows.Close()

	var entries []core.MemoryEntry
	for rows.Next() {
		var (
			entry     core.MemoryEntry
			kind      string
			createdAt string
			metadata  string
		)
		if err := rows.Scan(&entry.ID, &entry.Content, &kind, &createdAt, &metadata); err != nil {
			return nil, &core.StorageError{Op: "list memories", Err: err}
		}
		entry.Kind = core.Kind(kind)
		entry.CreatedAt = parseTime(createdAt)
		entry.Metadata = decodeMetadata(metadata)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list memories", Err: err}
	}

	return entries, nil
}

func (r *MemoriesRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&count); err != nil {
		return 0, &core.StorageError{Op: "count memories", Err: err}
	}
	return count, nil
}

func (r *MemoriesRepo) Clear(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM memories`); err != nil {
		return &core.StorageError{Op: "clear memories", Err: err}
	}

	log.FromCtx(ctx).Debug().Msg("All memories cleared")
	return nil
}

// normalizeContent flattens whitespace control characters to spaces
// and strips the rest, so stored content stays single-line and safe
// to echo anywhere.
func normalizeContent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f:
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func encodeMetadata(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	data, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeMetadata(s string) map[string]string {
	if s == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
