package repository

import (
	"context"
	"errors"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

var ErrDuplicateEmail = errors.New("email already on waitlist")

type WaitlistRepository interface {
	Create(ctx context.Context, entry *entity.WaitlistEntry) error
	CountByProject(ctx context.Context, projectID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type waitlistRepository struct {
	db *sqlx.DB
}

func NewWaitlistRepository(db *sqlx.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	entry.ID = uuid2.UUID(uuid.New())
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO waitlist (id, project_id, email, source, created_at)
		VALUES (:id, :project_id, :email, :source, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *waitlistRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM waitlist WHERE project_id = $1`, projectID)
	return count, err
}

func (r *waitlistRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM waitlist`)
	return count, err
}
