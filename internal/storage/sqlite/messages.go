package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/log"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

// AddMessage appends a message to a session and bumps the session's
// updated_at in the same transaction.
func (r *MessagesRepo) AddMessage(ctx context.Context, sessionID string, msg core.Message, metadata map[string]string) error {
	if !core.ValidRole(msg.Role) {
		return &core.ValidationError{Field: "role", Reason: "unknown role " + msg.Role}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.StorageError{Op: "add message", Err: err}
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, msg.Role, msg.Content, encodeMetadata(metadata), now)
	if err != nil {
		return &core.StorageError{Op: "add message", Err: err}
	}

	_, err = tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID)
	if err != nil {
		return &core.StorageError{Op: "add message", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &core.StorageError{Op: "add message", Err: err}
	}
	return nil
}

// GetMessages returns the full session transcript in insertion order.
func (r *MessagesRepo) GetMessages(ctx context.Context, sessionID string) ([]core.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, &core.StorageError{Op: "get messages", Err: err}
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, &core.StorageError{Op: "get messages", Err: err}
	}

	log.FromCtx(ctx).Debug().
		Str("session_id", sessionID).
		Int("count", len(messages)).
		Msg("Messages loaded")

	return messages, nil
}

// GetRecentMessages returns the last limit messages in chronological
// order: fetched newest-first and reversed.
func (r *MessagesRepo) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, &core.StorageError{Op: "get recent messages", Err: err}
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, &core.StorageError{Op: "get recent messages", Err: err}
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *MessagesRepo) CountMessages(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, &core.StorageError{Op: "count messages", Err: err}
	}
	return count, nil
}

func scanMessages(rows *sql.Rows) ([]core.Message, error) {
	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
