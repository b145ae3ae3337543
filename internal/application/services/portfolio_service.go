package services

import (
	"context"
	"fmt"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// PortfolioService handles the portfolio document and its projects.
type PortfolioService struct {
	api    ports.PortfolioAPI
	logger *logger.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(api ports.PortfolioAPI, logger *logger.Logger) *PortfolioService {
	return &PortfolioService{
		api:    api,
		logger: logger,
	}
}

// Get fetches the portfolio. Every entry comes back tagged with its
// variant kind; an entry the adapter could not classify fails the fetch.
func (s *PortfolioService) Get(ctx context.Context) (*entities.Portfolio, error) {
	p, err := s.api.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portfolio: %w", err)
	}

	for _, e := range p.Entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("portfolio contains malformed entry: %w", err)
		}
	}

	return p, nil
}

// Save creates or replaces the portfolio. The backend has no partial
// update; the full document is resubmitted each time.
func (s *PortfolioService) Save(ctx context.Context, req ports.PortfolioRequest, profileImage *ports.FileUpload, exists bool) (*entities.PortfolioSummary, error) {
	var (
		summary *entities.PortfolioSummary
		err     error
	)
	if exists {
		summary, err = s.api.Update(ctx, req, profileImage)
	} else {
		summary, err = s.api.Create(ctx, req, profileImage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Info("Portfolio saved", "portfolio_id", summary.PortfolioID)
	return summary, nil
}

// ListProjects fetches the user's projects.
func (s *PortfolioService) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject registers a new project with an optional image.
func (s *PortfolioService) CreateProject(ctx context.Context, req ports.ProjectRequest, image *ports.FileUpload) (*entities.Project, error) {
	project, err := s.api.CreateProject(ctx, req, image)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", "project_id", project.ProjectID, "title", project.Title)
	return project, nil
}

// UpdateProject replaces a project.
func (s *PortfolioService) UpdateProject(ctx context.Context, id int64, req ports.ProjectRequest, image *ports.FileUpload) (*entities.Project, error) {
	project, err := s.api.UpdateProject(ctx, id, req, image)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("Project updated", "project_id", project.ProjectID)
	return project, nil
}

// DeleteProject removes a project.
func (s *PortfolioService) DeleteProject(ctx context.Context, id int64) error {
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("Project deleted", "project_id", id)
	return nil
}
