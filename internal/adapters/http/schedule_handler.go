package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// ScheduleHandler handles schedule collection and detail requests
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	logger          *logger.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.ScheduleService, logger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// ListSchedules godoc
// @Summary List all schedules
// @Description Fetch the full schedule collection from the backend and return it
// @Tags schedules
// @Produce json
// @Success 200 {array} entities.Schedule
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules [get]
func (h *ScheduleHandler) ListSchedules(c echo.Context) error {
	records, err := h.scheduleService.LoadAll(c.Request().Context())
	if err != nil {
		h.logger.Error("List schedules failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetView godoc
// @Summary Get the grouped schedule view
// @Description Derive the date-grouped view: upcoming dates ascending, then past dates ascending
// @Tags schedules
// @Produce json
// @Success 200 {object} entities.CollectionView
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/view [get]
func (h *ScheduleHandler) GetView(c echo.Context) error {
	if !h.scheduleService.Loaded() {
		if _, err := h.scheduleService.LoadAll(c.Request().Context()); err != nil {
			h.logger.Error("Load before view failed", "error", err)
			return mapDomainError(err)
		}
	}

	view, err := h.scheduleService.View(time.Now())
	if err != nil {
		h.logger.Error("View derivation failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetSchedule godoc
// @Summary Get schedule by ID
// @Description Look up one schedule in the loaded collection; no backend call is made
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} entities.Schedule
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	record, err := h.scheduleService.Select(id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, record)
}

// CreateSchedule godoc
// @Summary Create a schedule
// @Description Create a schedule from a multipart body: a "dto" JSON part plus optional "files" parts
// @Tags schedules
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} entities.Schedule
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c echo.Context) error {
	var req ports.CreateScheduleRequest
	if err := bindMultipartDTO(c, &req); err != nil {
		return err
	}
	files, err := formUploads(c, "files")
	if err != nil {
		return err
	}

	created, err := h.scheduleService.Create(c.Request().Context(), req, files)
	if err != nil {
		h.logger.Error("Create schedule failed", "error", err, "company", req.CompanyName)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// DeleteSchedule godoc
// @Summary Delete a schedule
// @Description Delete a schedule on the backend and drop it from the loaded collection
// @Tags schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.scheduleService.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete schedule failed", "error", err, "schedule_id", id)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Schedule deleted"})
}
