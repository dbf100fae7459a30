package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dinerozz/landing-analytics-backend/internal/repository"
)

// staleAfter is how long a session may stay idle before the admin cleanup
// removes it.
const staleAfter = 24 * time.Hour

type SessionService interface {
	CleanupSessions(ctx context.Context, projectID string) (int64, error)
}

type sessionService struct {
	repo repository.SessionRepository
}

func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo}
}

func (s *sessionService) CleanupSessions(ctx context.Context, projectID string) (int64, error) {
	if projectID == "" {
		return 0, fmt.Errorf("project id is required")
	}

	cutoff := time.Now().UTC().Add(-staleAfter)
	deleted, err := s.repo.DeleteOlderThan(ctx, projectID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}

	return deleted, nil
}
