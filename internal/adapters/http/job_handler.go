package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// JobHandler handles job posting search requests
type JobHandler struct {
	jobService *services.JobService
	logger     *logger.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService, logger *logger.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// SearchJobs godoc
// @Summary Search job postings
// @Description Page through the backend's posting feed with optional filters
// @Tags jobs
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param keyword query string false "Keyword filter"
// @Success 200 {object} entities.JobPage
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) SearchJobs(c echo.Context) error {
	var filter ports.JobFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.jobService.Search(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Job search failed", "error", err, "keyword", filter.Keyword)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, page)
}
