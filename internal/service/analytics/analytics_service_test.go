package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
)

type stubAggregateRepo struct {
	rows []entity.DailyAggregate
}

func (r *stubAggregateRepo) Get(context.Context, string, string) (*entity.DailyAggregate, error) {
	return nil, nil
}

func (r *stubAggregateRepo) Insert(context.Context, *entity.DailyAggregate) (bool, error) {
	return false, nil
}

func (r *stubAggregateRepo) UpdateCAS(context.Context, *entity.DailyAggregate, int64) (bool, error) {
	return false, nil
}

func (r *stubAggregateRepo) ListByProject(_ context.Context, projectID string, _, _ *string) ([]entity.DailyAggregate, error) {
	var out []entity.DailyAggregate
	for _, row := range r.rows {
		if row.ProjectID == projectID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubAggregateRepo) CountProjects(context.Context) (int64, error) {
	seen := map[string]struct{}{}
	for _, row := range r.rows {
		seen[row.ProjectID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *stubAggregateRepo) SumVisits(context.Context) (int64, error) {
	var total int64
	for _, row := range r.rows {
		total += row.TotalVisits
	}
	return total, nil
}

func (r *stubAggregateRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	var deleted int64
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.ProjectID == projectID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

type stubVisitRepo struct {
	recent        []entity.RecentVisit
	deletedVisits int64
}

func (r *stubVisitRepo) Append(context.Context, *entity.RawVisitRecord) error { return nil }

func (r *stubVisitRepo) FinalizeExit(context.Context, string, string, float64, float64) error {
	return nil
}

func (r *stubVisitRepo) RecentByProject(context.Context, string, int) ([]entity.RecentVisit, error) {
	return r.recent, nil
}

func (r *stubVisitRepo) Recent(context.Context, int) ([]entity.RecentVisit, error) {
	return r.recent, nil
}

func (r *stubVisitRepo) CountByProject(context.Context, string) (int64, error) { return 0, nil }

func (r *stubVisitRepo) DeleteByProject(context.Context, string) (int64, error) {
	return r.deletedVisits, nil
}

type stubCountRepo struct {
	perProject int64
	total      int64
}

func (r *stubCountRepo) CountByProject(context.Context, string) (int64, error) {
	return r.perProject, nil
}

func (r *stubCountRepo) CountAll(context.Context) (int64, error) { return r.total, nil }

type stubWaitlistRepo struct{ stubCountRepo }

func (r *stubWaitlistRepo) Create(context.Context, *entity.WaitlistEntry) error { return nil }

type stubSubmissionRepo struct{ stubCountRepo }

func (r *stubSubmissionRepo) Create(context.Context, *entity.Submission) error { return nil }

var errCacheMiss = errors.New("cache miss")

// memoryCache is a map-backed stand-in for the redis service.
type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := c.values[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func (c *memoryCache) Health(context.Context) error { return nil }

func (c *memoryCache) Close() error { return nil }

func aggregateWith(projectID, dateKey string, visits int64, totalTime float64) entity.DailyAggregate {
	agg := entity.NewDailyAggregate(projectID, dateKey)
	agg.TotalVisits = visits
	agg.TotalTimeOnPage = totalTime
	if visits > 0 {
		agg.AvgTimeOnPage = totalTime / float64(visits)
	}
	agg.PageViews["home"] = visits
	agg.Referrers["direct"] = visits
	agg.Devices["desktop"] = visits
	return *agg
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name        string
		submissions int64
		visits      int64
		want        float64
	}{
		{"zero visits never divides", 5, 0, 0},
		{"no submissions", 0, 100, 0},
		{"round to two decimals", 1, 3, 33.33},
		{"full conversion", 10, 10, 100},
		{"small rate", 7, 900, 0.78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversionRate(tt.submissions, tt.visits); got != tt.want {
				t.Errorf("ConversionRate(%d, %d) = %v, want %v", tt.submissions, tt.visits, got, tt.want)
			}
		})
	}
}

func newTestAnalyticsService(aggs *stubAggregateRepo, visits *stubVisitRepo, waitlistTotal, submissionTotal int64, cache *memoryCache) AnalyticsService {
	waitlist := &stubWaitlistRepo{stubCountRepo{perProject: waitlistTotal, total: waitlistTotal}}
	submissions := &stubSubmissionRepo{stubCountRepo{perProject: submissionTotal, total: submissionTotal}}
	if cache == nil {
		return NewAnalyticsService(aggs, visits, waitlist, submissions, nil, time.Minute)
	}
	return NewAnalyticsService(aggs, visits, waitlist, submissions, cache, time.Minute)
}

func TestProjectAnalytics(t *testing.T) {
	aggs := &stubAggregateRepo{rows: []entity.DailyAggregate{
		aggregateWith("ahau", "2025-01-15", 3, 12000),
		aggregateWith("ahau", "2025-01-16", 1, 4000),
		aggregateWith("other", "2025-01-15", 99, 0),
	}}
	visits := &stubVisitRepo{recent: []entity.RecentVisit{{ProjectID: "ahau", Page: "home"}}}

	svc := newTestAnalyticsService(aggs, visits, 8, 2, nil)

	report, err := svc.ProjectAnalytics(context.Background(), "ahau")
	if err != nil {
		t.Fatalf("ProjectAnalytics: %v", err)
	}

	if report.TotalVisits != 4 {
		t.Errorf("TotalVisits = %d, want 4", report.TotalVisits)
	}
	if report.AvgTimeOnPage != 4000 {
		t.Errorf("AvgTimeOnPage = %f, want 4000", report.AvgTimeOnPage)
	}
	if report.TotalWaitlist != 8 || report.TotalSubmissions != 2 {
		t.Errorf("counts = %d/%d, want 8/2", report.TotalWaitlist, report.TotalSubmissions)
	}
	if report.ConversionRate != 50 {
		t.Errorf("ConversionRate = %v, want 50", report.ConversionRate)
	}
	if len(report.RecentActivity) != 1 {
		t.Errorf("RecentActivity length = %d, want 1", len(report.RecentActivity))
	}
	if report.PageViews["home"] != 4 {
		t.Errorf("PageViews[home] = %d, want 4", report.PageViews["home"])
	}
}

func TestProjectAnalyticsEmptyProject(t *testing.T) {
	svc := newTestAnalyticsService(&stubAggregateRepo{}, &stubVisitRepo{}, 0, 5, nil)

	report, err := svc.ProjectAnalytics(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ProjectAnalytics: %v", err)
	}

	if report.TotalVisits != 0 {
		t.Errorf("TotalVisits = %d, want 0", report.TotalVisits)
	}
	if report.ConversionRate != 0 {
		t.Errorf("ConversionRate must be 0 with no visits, got %v", report.ConversionRate)
	}
	if report.RecentActivity == nil {
		t.Error("RecentActivity should be an empty slice, not nil")
	}
}

func TestProjectAnalyticsUsesCache(t *testing.T) {
	aggs := &stubAggregateRepo{rows: []entity.DailyAggregate{
		aggregateWith("ahau", "2025-01-15", 3, 0),
	}}
	cache := newMemoryCache()
	svc := newTestAnalyticsService(aggs, &stubVisitRepo{}, 0, 0, cache)

	ctx := context.Background()
	first, err := svc.ProjectAnalytics(ctx, "ahau")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}

	// store changes, but the cached report should still be served
	aggs.rows = append(aggs.rows, aggregateWith("ahau", "2025-01-16", 10, 0))

	second, err := svc.ProjectAnalytics(ctx, "ahau")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second.TotalVisits != first.TotalVisits {
		t.Errorf("expected cached TotalVisits %d, got %d", first.TotalVisits, second.TotalVisits)
	}
}

func TestGlobalStats(t *testing.T) {
	aggs := &stubAggregateRepo{rows: []entity.DailyAggregate{
		aggregateWith("ahau", "2025-01-15", 4, 0),
		aggregateWith("nimbus", "2025-01-15", 6, 0),
	}}
	svc := newTestAnalyticsService(aggs, &stubVisitRepo{}, 3, 1, nil)

	stats, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats: %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2", stats.TotalProducts)
	}
	if stats.TotalVisits != 10 {
		t.Errorf("TotalVisits = %d, want 10", stats.TotalVisits)
	}
}

func TestClearAnalytics(t *testing.T) {
	aggs := &stubAggregateRepo{rows: []entity.DailyAggregate{
		aggregateWith("ahau", "2025-01-15", 4, 0),
		aggregateWith("ahau", "2025-01-16", 2, 0),
		aggregateWith("nimbus", "2025-01-15", 1, 0),
	}}
	visits := &stubVisitRepo{deletedVisits: 6}
	cache := newMemoryCache()
	svc := newTestAnalyticsService(aggs, visits, 0, 0, cache)

	ctx := context.Background()
	if _, err := svc.ProjectAnalytics(ctx, "ahau"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	result, err := svc.ClearAnalytics(ctx, "ahau")
	if err != nil {
		t.Fatalf("ClearAnalytics: %v", err)
	}

	if result.DeletedStats != 2 {
		t.Errorf("DeletedStats = %d, want 2", result.DeletedStats)
	}
	if result.DeletedVisits != 6 {
		t.Errorf("DeletedVisits = %d, want 6", result.DeletedVisits)
	}
	if _, ok := cache.values["analytics:project:ahau"]; ok {
		t.Error("cache entry should be invalidated after clear")
	}

	remaining, _ := aggs.ListByProject(ctx, "nimbus", nil, nil)
	if len(remaining) != 1 {
		t.Errorf("other projects must be untouched, got %d rows", len(remaining))
	}
}
