package waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
)

type WaitlistService interface {
	Join(ctx context.Context, req entity.JoinWaitlistRequest) (*entity.WaitlistEntry, error)
}

type waitlistService struct {
	repo repository.WaitlistRepository
}

func NewWaitlistService(repo repository.WaitlistRepository) WaitlistService {
	return &waitlistService{repo: repo}
}

func (s *waitlistService) Join(ctx context.Context, req entity.JoinWaitlistRequest) (*entity.WaitlistEntry, error) {
	entry := &entity.WaitlistEntry{
		ProjectID: req.ProjectID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Source:    req.Source,
	}
	if entry.Source == "" {
		entry.Source = "landing"
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	return entry, nil
}
