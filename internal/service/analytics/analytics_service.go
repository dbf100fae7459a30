// internal/service/analytics/analytics_service.go
package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
	"github.com/dinerozz/landing-analytics-backend/internal/service/redis"
	"github.com/dinerozz/landing-analytics-backend/pkg/utils"
)

const recentActivityLimit = 10

type AnalyticsService interface {
	ProjectAnalytics(ctx context.Context, projectID string) (*entity.ProjectAnalytics, error)
	GlobalStats(ctx context.Context) (*entity.GlobalStats, error)
	ClearAnalytics(ctx context.Context, projectID string) (*entity.ClearAnalyticsResult, error)
}

type analyticsService struct {
	aggregates  repository.AggregateRepository
	visits      repository.VisitRepository
	waitlist    repository.WaitlistRepository
	submissions repository.SubmissionRepository
	cache       redis.ServiceInterface
	cacheTTL    time.Duration
}

func NewAnalyticsService(
	aggregates repository.AggregateRepository,
	visits repository.VisitRepository,
	waitlist repository.WaitlistRepository,
	submissions repository.SubmissionRepository,
	cache redis.ServiceInterface,
	cacheTTL time.Duration,
) AnalyticsService {
	return &analyticsService{
		aggregates:  aggregates,
		visits:      visits,
		waitlist:    waitlist,
		submissions: submissions,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// ConversionRate is submissions per hundred visits, rounded to two
// decimals. Zero visits is zero, never a division.
func ConversionRate(totalSubmissions, totalVisits int64) float64 {
	if totalVisits == 0 {
		return 0
	}
	return utils.RoundToTwoDecimals(float64(totalSubmissions) / float64(totalVisits) * 100)
}

func (s *analyticsService) ProjectAnalytics(ctx context.Context, projectID string) (*entity.ProjectAnalytics, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	cacheKey := "analytics:project:" + projectID
	if s.cache != nil {
		var cached entity.ProjectAnalytics
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	aggs, err := s.aggregates.ListByProject(ctx, projectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list aggregates: %w", err)
	}

	merged := entity.MergeAggregates(aggs)

	totalWaitlist, err := s.waitlist.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist: %w", err)
	}

	totalSubmissions, err := s.submissions.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	recent, err := s.visits.RecentByProject(ctx, projectID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	if recent == nil {
		recent = []entity.RecentVisit{}
	}

	report := &entity.ProjectAnalytics{
		ProjectID:        projectID,
		TotalVisits:      merged.TotalVisits,
		UniqueVisitors:   merged.UniqueVisitors,
		TotalSubmissions: totalSubmissions,
		TotalWaitlist:    totalWaitlist,
		ConversionRate:   ConversionRate(totalSubmissions, merged.TotalVisits),
		AvgTimeOnPage:    merged.AvgTimeOnPage,
		AvgScrollDepth:   merged.AvgScrollDepth,
		Interactions:     merged.Interactions,
		PageViews:        merged.PageViews,
		Referrers:        merged.Referrers,
		Devices:          merged.Devices,
		RecentActivity:   recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, report, s.cacheTTL); err != nil {
			log.Printf("⚠️ Failed to cache analytics for %s: %v", projectID, err)
		}
	}

	return report, nil
}

func (s *analyticsService) GlobalStats(ctx context.Context) (*entity.GlobalStats, error) {
	totalProducts, err := s.aggregates.CountProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	totalVisits, err := s.aggregates.SumVisits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum visits: %w", err)
	}

	totalWaitlist, err := s.waitlist.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist: %w", err)
	}

	totalSubmissions, err := s.submissions.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	recent, err := s.visits.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	if recent == nil {
		recent = []entity.RecentVisit{}
	}

	return &entity.GlobalStats{
		TotalProducts:    totalProducts,
		TotalVisits:      totalVisits,
		TotalSubmissions: totalSubmissions,
		TotalWaitlist:    totalWaitlist,
		RecentActivity:   recent,
	}, nil
}

func (s *analyticsService) ClearAnalytics(ctx context.Context, projectID string) (*entity.ClearAnalyticsResult, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	deletedVisits, err := s.visits.DeleteByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete visits: %w", err)
	}

	deletedStats, err := s.aggregates.DeleteByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete aggregates: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, "analytics:project:"+projectID); err != nil {
			log.Printf("⚠️ Failed to invalidate analytics cache for %s: %v", projectID, err)
		}
	}

	return &entity.ClearAnalyticsResult{
		DeletedVisits: deletedVisits,
		DeletedStats:  deletedStats,
	}, nil
}
