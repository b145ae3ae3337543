package services

import (
	"context"
	"fmt"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// JobService proxies job posting search to the backend. Nothing is cached
// client-side; every search is a fresh request.
type JobService struct {
	api    ports.JobAPI
	logger *logger.Logger
}

// NewJobService creates a new job service
func NewJobService(api ports.JobAPI, logger *logger.Logger) *JobService {
	return &JobService{
		api:    api,
		logger: logger,
	}
}

// Search forwards a validated filter to the posting search and returns the
// page as-is.
func (s *JobService) Search(ctx context.Context, filter ports.JobFilter) (*entities.JobPage, error) {
	if filter.Size == 0 {
		filter.Size = 20
	}

	page, err := s.api.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search job postings: %w", err)
	}

	s.logger.Debug("Job search", "keyword", filter.Keyword, "page", filter.Page, "results", page.NumberOfElements)

	return page, nil
}
