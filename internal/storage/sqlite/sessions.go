package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sandevgo/membot/internal/core"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Create(ctx context.Context, session core.Session) error {
	if session.ID == "" {
		return &core.ValidationError{Field: "id", Reason: "must not be empty"}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, updated_at, metadata) VALUES (?, ?, ?, ?)`,
		session.ID,
		session.CreatedAt.Format(time.RFC3339),
		session.UpdatedAt.Format(time.RFC3339),
		encodeMetadata(session.Metadata))
	if err != nil {
		return &core.StorageError{Op: "create session", Err: err}
	}
	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (core.Session, error) {
	var (
		session   core.Session
		createdAt string
		updatedAt string
		metadata  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at, metadata FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &createdAt, &updatedAt, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Session{}, core.ErrNotFound
	}
	if err != nil {
		return core.Session{}, &core.StorageError{Op: "get session", Err: err}
	}

	session.CreatedAt = parseTime(createdAt)
	session.UpdatedAt = parseTime(updatedAt)
	session.Metadata = decodeMetadata(metadata)
	return session, nil
}

// Delete removes a session; its messages go with it via the foreign
// key cascade.
func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return &core.StorageError{Op: "delete session", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &core.StorageError{Op: "delete session", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
