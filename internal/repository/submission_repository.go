package repository

import (
	"context"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	CountByProject(ctx context.Context, projectID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	submission.ID = uuid2.UUID(uuid.New())
	submission.CreatedAt = time.Now().UTC()
	if len(submission.Payload) == 0 {
		submission.Payload = []byte("{}")
	}

	query := `
		INSERT INTO submissions (id, project_id, email, payload, created_at)
		VALUES (:id, :project_id, :email, :payload, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, submission)
	return err
}

func (r *submissionRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM submissions WHERE project_id = $1`, projectID)
	return count, err
}

func (r *submissionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM submissions`)
	return count, err
}
