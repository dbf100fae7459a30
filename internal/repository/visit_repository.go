package repository

import (
	"context"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

// VisitRepository is the append-only raw event log. Duplicate submissions
// from retried clients produce duplicate rows by design; the log is for
// audit and replay, not re-derivable truth.
type VisitRepository interface {
	Append(ctx context.Context, record *entity.RawVisitRecord) error
	FinalizeExit(ctx context.Context, projectID, sessionID string, timeOnPageMs, scrollDepthPct float64) error
	RecentByProject(ctx context.Context, projectID string, limit int) ([]entity.RecentVisit, error)
	Recent(ctx context.Context, limit int) ([]entity.RecentVisit, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Append(ctx context.Context, record *entity.RawVisitRecord) error {
	record.ID = uuid2.UUID(uuid.New())
	record.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO visits (
			id, project_id, page, referrer, device_type, user_agent, screen_resolution,
			time_on_page_ms, scroll_depth_pct, interactions, session_id, user_id,
			timestamp, date_key, hour, day_of_week, month, created_at
		) VALUES (
			:id, :project_id, :page, :referrer, :device_type, :user_agent, :screen_resolution,
			:time_on_page_ms, :scroll_depth_pct, :interactions, :session_id, :user_id,
			:timestamp, :date_key, :hour, :day_of_week, :month, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, record)
	return err
}

// FinalizeExit rewrites the time/scroll figures on the session's latest
// record. A session that never tracked a visit is a silent no-op.
func (r *visitRepository) FinalizeExit(ctx context.Context, projectID, sessionID string, timeOnPageMs, scrollDepthPct float64) error {
	query := `
		UPDATE visits SET time_on_page_ms = $1, scroll_depth_pct = $2
		WHERE id = (
			SELECT id FROM visits
			WHERE project_id = $3 AND session_id = $4
			ORDER BY timestamp DESC
			LIMIT 1
		)`

	_, err := r.db.ExecContext(ctx, query, timeOnPageMs, scrollDepthPct, projectID, sessionID)
	return err
}

func (r *visitRepository) RecentByProject(ctx context.Context, projectID string, limit int) ([]entity.RecentVisit, error) {
	var visits []entity.RecentVisit
	query := `
		SELECT project_id, page, referrer, device_type, timestamp
		FROM visits
		WHERE project_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &visits, query, projectID, limit)
	return visits, err
}

func (r *visitRepository) Recent(ctx context.Context, limit int) ([]entity.RecentVisit, error) {
	var visits []entity.RecentVisit
	query := `
		SELECT project_id, page, referrer, device_type, timestamp
		FROM visits
		ORDER BY timestamp DESC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &visits, query, limit)
	return visits, err
}

func (r *visitRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM visits WHERE project_id = $1`, projectID)
	return count, err
}

func (r *visitRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
