// internal/service/visit/visit_service.go
package visit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
	"github.com/dinerozz/landing-analytics-backend/pkg/utils"
)

var (
	ErrMissingProjectID    = errors.New("projectId is required")
	ErrTransactionConflict = errors.New("aggregate update retries exhausted")
)

// maxFoldRetries bounds the re-read-and-reapply loop on optimistic
// conflicts. Past this the event is reported as not durably aggregated,
// though its raw record may already exist for replay.
const maxFoldRetries = 5

type VisitService interface {
	ApplyEvent(ctx context.Context, req entity.TrackVisitRequest) (*entity.DailyAggregate, string, error)
	ApplyExit(ctx context.Context, req entity.TrackExitRequest) error
}

type visitService struct {
	aggregates repository.AggregateRepository
	visits     repository.VisitRepository
	sessions   repository.SessionRepository
	now        func() time.Time
}

func NewVisitService(aggregates repository.AggregateRepository, visits repository.VisitRepository, sessions repository.SessionRepository) VisitService {
	return &visitService{
		aggregates: aggregates,
		visits:     visits,
		sessions:   sessions,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Normalize applies the documented defaults and classifiers to an incoming
// payload. Pure: the only failure is a missing project id.
func Normalize(req entity.TrackVisitRequest, receivedAt time.Time) (entity.VisitEvent, error) {
	if req.ProjectID == "" {
		return entity.VisitEvent{}, ErrMissingProjectID
	}

	ev := entity.VisitEvent{
		ProjectID:        req.ProjectID,
		Page:             req.Page,
		Referrer:         req.Referrer,
		UserAgent:        req.UserAgent,
		ScreenResolution: req.ScreenResolution,
		TimeOnPageMs:     req.TimeOnPageMs,
		ScrollDepthPct:   req.ScrollDepthPct,
		Interactions:     req.Interactions,
		SessionID:        req.SessionID,
		UserID:           req.UserID,
		Timestamp:        receivedAt,
	}

	if ev.Page == "" {
		ev.Page = "unknown"
	}
	if ev.UserAgent == "" {
		ev.UserAgent = "unknown"
	}
	if ev.UserID == "" {
		ev.UserID = entity.AnonymousUserID
	}
	if ev.SessionID == "" {
		ev.SessionID = utils.GenerateSessionID()
	}
	if ev.Interactions == nil {
		ev.Interactions = []string{}
	}

	ev.Referrer = utils.ClassifyReferrer(ev.Referrer)
	ev.DeviceType = utils.ClassifyDevice(req.UserAgent)

	return ev, nil
}

// ApplyEvent runs the full tracking path: append the raw record, then fold
// the event into its (projectId, dateKey) aggregate under optimistic
// concurrency. The two writes fail independently; a fold failure is
// replayable from the raw log.
func (s *visitService) ApplyEvent(ctx context.Context, req entity.TrackVisitRequest) (*entity.DailyAggregate, string, error) {
	ev, err := Normalize(req, s.now())
	if err != nil {
		return nil, "", err
	}

	dateKey, err := utils.DateKey(ev.Timestamp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve aggregate key: %w", err)
	}

	record := recordFromEvent(ev, dateKey)
	if err := s.visits.Append(ctx, &record); err != nil {
		return nil, "", fmt.Errorf("failed to append raw visit: %w", err)
	}

	if err := s.sessions.Touch(ctx, ev.ProjectID, ev.SessionID, ev.UserID); err != nil {
		// not on the critical path of aggregation, keep going
		log.Printf("⚠️ Failed to touch session %s for project %s: %v", ev.SessionID, ev.ProjectID, err)
	}

	agg, err := s.fold(ctx, ev, dateKey)
	if err != nil {
		log.Printf("❌ Fold failed for project %s date %s page %s: %v", ev.ProjectID, dateKey, ev.Page, err)
		return nil, "", err
	}

	return agg, ev.SessionID, nil
}

func (s *visitService) fold(ctx context.Context, ev entity.VisitEvent, dateKey string) (*entity.DailyAggregate, error) {
	for attempt := 0; attempt < maxFoldRetries; attempt++ {
		agg, err := s.aggregates.Get(ctx, ev.ProjectID, dateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read aggregate: %w", err)
		}

		if agg == nil {
			fresh := entity.NewDailyAggregate(ev.ProjectID, dateKey)
			fresh.Fold(ev)

			created, err := s.aggregates.Insert(ctx, fresh)
			if err != nil {
				return nil, fmt.Errorf("failed to create aggregate: %w", err)
			}
			if created {
				return fresh, nil
			}
			// another writer created the document first, re-read and reapply
			continue
		}

		version := agg.Version
		agg.Fold(ev)

		updated, err := s.aggregates.UpdateCAS(ctx, agg, version)
		if err != nil {
			return nil, fmt.Errorf("failed to update aggregate: %w", err)
		}
		if updated {
			return agg, nil
		}
	}

	return nil, ErrTransactionConflict
}

// ApplyExit folds the final time/scroll figures of a session into its
// day's aggregate and rewrites the session's raw record. Best effort: an
// exit for a day with no aggregate is a no-op.
func (s *visitService) ApplyExit(ctx context.Context, req entity.TrackExitRequest) error {
	if req.ProjectID == "" {
		return ErrMissingProjectID
	}
	if req.SessionID == "" {
		return nil
	}

	now := s.now()
	dateKey, err := utils.DateKey(now)
	if err != nil {
		return fmt.Errorf("failed to resolve aggregate key: %w", err)
	}

	if err := s.visits.FinalizeExit(ctx, req.ProjectID, req.SessionID, req.TimeOnPageMs, req.ScrollDepthPct); err != nil {
		return fmt.Errorf("failed to finalize raw visit: %w", err)
	}

	for attempt := 0; attempt < maxFoldRetries; attempt++ {
		agg, err := s.aggregates.Get(ctx, req.ProjectID, dateKey)
		if err != nil {
			return fmt.Errorf("failed to read aggregate: %w", err)
		}
		if agg == nil {
			return nil
		}

		version := agg.Version
		agg.FoldExit(req.TimeOnPageMs, req.ScrollDepthPct, now)

		updated, err := s.aggregates.UpdateCAS(ctx, agg, version)
		if err != nil {
			return fmt.Errorf("failed to update aggregate: %w", err)
		}
		if updated {
			return nil
		}
	}

	return ErrTransactionConflict
}

func recordFromEvent(ev entity.VisitEvent, dateKey string) entity.RawVisitRecord {
	hour, dayOfWeek, month := utils.TimeParts(ev.Timestamp)

	return entity.RawVisitRecord{
		ProjectID:        ev.ProjectID,
		Page:             ev.Page,
		Referrer:         ev.Referrer,
		DeviceType:       ev.DeviceType,
		UserAgent:        ev.UserAgent,
		ScreenResolution: ev.ScreenResolution,
		TimeOnPageMs:     ev.TimeOnPageMs,
		ScrollDepthPct:   ev.ScrollDepthPct,
		Interactions:     entity.StringList(ev.Interactions),
		SessionID:        ev.SessionID,
		UserID:           ev.UserID,
		Timestamp:        ev.Timestamp,
		DateKey:          dateKey,
		Hour:             hour,
		DayOfWeek:        dayOfWeek,
		Month:            month,
	}
}
