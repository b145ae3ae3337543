package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// PortfolioHandler handles portfolio and project requests
type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *services.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		logger:           logger,
	}
}

// GetPortfolio godoc
// @Summary Get the user's portfolio
// @Tags portfolio
// @Produce json
// @Success 200 {object} entities.Portfolio
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	portfolio, err := h.portfolioService.Get(c.Request().Context())
	if err != nil {
		h.logger.Error("Get portfolio failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, portfolio)
}

// CreatePortfolio godoc
// @Summary Create the portfolio
// @Description Create the portfolio from a "dto" JSON part plus an optional "profileImage" part
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} entities.PortfolioSummary
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [post]
func (h *PortfolioHandler) CreatePortfolio(c echo.Context) error {
	return h.save(c, false)
}

// UpdatePortfolio godoc
// @Summary Update the portfolio
// @Description Replace the portfolio from a "dto" JSON part plus an optional "profileImage" part
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} entities.PortfolioSummary
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [put]
func (h *PortfolioHandler) UpdatePortfolio(c echo.Context) error {
	return h.save(c, true)
}

func (h *PortfolioHandler) save(c echo.Context, exists bool) error {
	var req ports.PortfolioRequest
	if err := bindMultipartDTO(c, &req); err != nil {
		return err
	}
	profileImage, err := formUpload(c, "profileImage")
	if err != nil {
		return err
	}

	summary, err := h.portfolioService.Save(c.Request().Context(), req, profileImage, exists)
	if err != nil {
		h.logger.Error("Save portfolio failed", "error", err)
		return mapDomainError(err)
	}

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	return c.JSON(status, summary)
}

// ListProjects godoc
// @Summary List portfolio projects
// @Tags portfolio
// @Produce json
// @Success 200 {array} entities.Project
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio/projects [get]
func (h *PortfolioHandler) ListProjects(c echo.Context) error {
	projects, err := h.portfolioService.ListProjects(c.Request().Context())
	if err != nil {
		h.logger.Error("List projects failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// CreateProject godoc
// @Summary Create a project
// @Description Create a project from a "dto" JSON part plus an optional "image" part
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio/projects [post]
func (h *PortfolioHandler) CreateProject(c echo.Context) error {
	var req ports.ProjectRequest
	if err := bindMultipartDTO(c, &req); err != nil {
		return err
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	project, err := h.portfolioService.CreateProject(c.Request().Context(), req, image)
	if err != nil {
		h.logger.Error("Create project failed", "error", err, "title", req.Title)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio/projects/{id} [put]
func (h *PortfolioHandler) UpdateProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ports.ProjectRequest
	if err := bindMultipartDTO(c, &req); err != nil {
		return err
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	project, err := h.portfolioService.UpdateProject(c.Request().Context(), id, req, image)
	if err != nil {
		h.logger.Error("Update project failed", "error", err, "project_id", id)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags portfolio
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio/projects/{id} [delete]
func (h *PortfolioHandler) DeleteProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.portfolioService.DeleteProject(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete project failed", "error", err, "project_id", id)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Project deleted"})
}
