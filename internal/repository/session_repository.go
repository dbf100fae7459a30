package repository

import (
	"context"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"
)

type SessionRepository interface {
	Touch(ctx context.Context, projectID, sessionID, userID string) error
	DeleteOlderThan(ctx context.Context, projectID string, cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Touch records activity for a session: first sight inserts the row,
// later sights only move last_seen_at forward.
func (r *sessionRepository) Touch(ctx context.Context, projectID, sessionID, userID string) error {
	now := time.Now().UTC()
	id := uuid2.UUID(uuid.New())

	query := `
		INSERT INTO sessions (id, project_id, session_id, user_id, started_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (project_id, session_id)
		DO UPDATE SET last_seen_at = EXCLUDED.last_seen_at`

	_, err := r.db.ExecContext(ctx, query, id, projectID, sessionID, userID, now)
	return err
}

func (r *sessionRepository) DeleteOlderThan(ctx context.Context, projectID string, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE project_id = $1 AND last_seen_at < $2`, projectID, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
