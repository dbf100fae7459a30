package submission

import (
	"context"
	"fmt"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
)

type SubmissionService interface {
	Create(ctx context.Context, req entity.CreateSubmissionRequest) (*entity.Submission, error)
}

type submissionService struct {
	repo repository.SubmissionRepository
}

func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

func (s *submissionService) Create(ctx context.Context, req entity.CreateSubmissionRequest) (*entity.Submission, error) {
	submission := &entity.Submission{
		ProjectID: req.ProjectID,
		Email:     req.Email,
		Payload:   req.Payload,
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}
