package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

// AggregateRepository is the durable per (project_id, date_key) aggregate
// document. Writes are full-row replacements guarded by the version column,
// so concurrent folds on the same key serialize through compare-and-swap.
type AggregateRepository interface {
	Get(ctx context.Context, projectID, dateKey string) (*entity.DailyAggregate, error)
	Insert(ctx context.Context, agg *entity.DailyAggregate) (bool, error)
	UpdateCAS(ctx context.Context, agg *entity.DailyAggregate, expectedVersion int64) (bool, error)
	ListByProject(ctx context.Context, projectID string, from, to *string) ([]entity.DailyAggregate, error)
	CountProjects(ctx context.Context) (int64, error)
	SumVisits(ctx context.Context) (int64, error)
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

type aggregateRepository struct {
	db *sqlx.DB
}

func NewAggregateRepository(db *sqlx.DB) AggregateRepository {
	return &aggregateRepository{db: db}
}

func (r *aggregateRepository) Get(ctx context.Context, projectID, dateKey string) (*entity.DailyAggregate, error) {
	var agg entity.DailyAggregate
	query := `SELECT * FROM daily_aggregates WHERE project_id = $1 AND date_key = $2`

	err := r.db.GetContext(ctx, &agg, query, projectID, dateKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &agg, nil
}

// Insert creates the lazily-initialized first document for a key. Returns
// false when another writer created the row first.
func (r *aggregateRepository) Insert(ctx context.Context, agg *entity.DailyAggregate) (bool, error) {
	agg.Version = 1

	query := `
		INSERT INTO daily_aggregates (
			project_id, date_key, total_visits, unique_visitors, visitor_ids,
			page_views, referrers, devices,
			avg_time_on_page, avg_scroll_depth, total_time_on_page, total_scroll_depth,
			interactions, version, last_updated
		) VALUES (
			:project_id, :date_key, :total_visits, :unique_visitors, :visitor_ids,
			:page_views, :referrers, :devices,
			:avg_time_on_page, :avg_scroll_depth, :total_time_on_page, :total_scroll_depth,
			:interactions, :version, :last_updated
		) ON CONFLICT (project_id, date_key) DO NOTHING`

	result, err := r.db.NamedExecContext(ctx, query, agg)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// UpdateCAS rewrites the whole row if nobody folded into it since it was
// read. Returns false on a version mismatch so the caller can re-read and
// reapply.
func (r *aggregateRepository) UpdateCAS(ctx context.Context, agg *entity.DailyAggregate, expectedVersion int64) (bool, error) {
	next := *agg
	next.Version = expectedVersion + 1

	query := `
		UPDATE daily_aggregates SET
			total_visits = :total_visits,
			unique_visitors = :unique_visitors,
			visitor_ids = :visitor_ids,
			page_views = :page_views,
			referrers = :referrers,
			devices = :devices,
			avg_time_on_page = :avg_time_on_page,
			avg_scroll_depth = :avg_scroll_depth,
			total_time_on_page = :total_time_on_page,
			total_scroll_depth = :total_scroll_depth,
			interactions = :interactions,
			version = :version,
			last_updated = :last_updated
		WHERE project_id = :project_id AND date_key = :date_key AND version = :expected_version`

	arg := struct {
		entity.DailyAggregate
		ExpectedVersion int64 `db:"expected_version"`
	}{next, expectedVersion}

	result, err := r.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected == 1 {
		agg.Version = next.Version
		return true, nil
	}
	return false, nil
}

func (r *aggregateRepository) ListByProject(ctx context.Context, projectID string, from, to *string) ([]entity.DailyAggregate, error) {
	query := "SELECT * FROM daily_aggregates WHERE project_id = $1"
	args := []interface{}{projectID}
	argIndex := 2

	if from != nil {
		query += fmt.Sprintf(" AND date_key >= $%d", argIndex)
		args = append(args, *from)
		argIndex++
	}

	if to != nil {
		query += fmt.Sprintf(" AND date_key <= $%d", argIndex)
		args = append(args, *to)
		argIndex++
	}

	query += " ORDER BY date_key ASC"

	var aggs []entity.DailyAggregate
	err := r.db.SelectContext(ctx, &aggs, query, args...)
	return aggs, err
}

func (r *aggregateRepository) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(DISTINCT project_id) FROM daily_aggregates`)
	return count, err
}

func (r *aggregateRepository) SumVisits(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(total_visits), 0) FROM daily_aggregates`)
	return total, err
}

func (r *aggregateRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM daily_aggregates WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
