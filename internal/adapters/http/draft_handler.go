package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
)

// DraftHandler exposes edit sessions over HTTP. A session is opened
// against the loaded collection, mutated through the files and fields
// endpoints, and closed by commit or cancel.
type DraftHandler struct {
	draftService    *services.DraftService
	scheduleService *services.ScheduleService
	logger          *logger.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *services.DraftService, scheduleService *services.ScheduleService, logger *logger.Logger) *DraftHandler {
	return &DraftHandler{
		draftService:    draftService,
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// UpdateDraftRequest carries the editable scalar fields of a draft.
type UpdateDraftRequest struct {
	CompanyName  string               `json:"companyName" validate:"required"`
	Title        string               `json:"title" validate:"required"`
	ScheduleDate string               `json:"scheduleDate" validate:"required,datetime=2006-01-02"`
	Details      []DraftDetailRequest `json:"details" validate:"dive"`
}

type DraftDetailRequest struct {
	DetailID int64  `json:"detailId"`
	Title    string `json:"detailTitle" validate:"required"`
	Content  string `json:"detailContent"`
}

// BeginEdit godoc
// @Summary Open an edit session
// @Description Snapshot the schedule into a draft; reopening resets any existing draft
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 201 {object} services.Draft
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit [post]
func (h *DraftHandler) BeginEdit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	record, err := h.scheduleService.Select(id)
	if err != nil {
		return mapDomainError(err)
	}

	draft := h.draftService.BeginEdit(record)
	h.logger.Info("Edit session opened", "schedule_id", id)
	return c.JSON(http.StatusCreated, draft)
}

// GetDraft godoc
// @Summary Get the open edit session
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} services.Draft
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit [get]
func (h *DraftHandler) GetDraft(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, draft)
}

// UpdateDraft godoc
// @Summary Update the draft's fields
// @Description Overwrite company, title, date and details; staged files are untouched
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param request body UpdateDraftRequest true "Draft fields"
// @Success 200 {object} services.Draft
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit [put]
func (h *DraftHandler) UpdateDraft(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	details := make([]entities.ScheduleDetail, 0, len(req.Details))
	for _, d := range req.Details {
		details = append(details, entities.ScheduleDetail{
			DetailID: d.DetailID,
			Title:    d.Title,
			Content:  d.Content,
		})
	}
	h.draftService.Apply(draft, req.CompanyName, req.Title, req.ScheduleDate, details)
	return c.JSON(http.StatusOK, draft)
}

// CancelEdit godoc
// @Summary Discard the edit session
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit [delete]
func (h *DraftHandler) CancelEdit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	h.draftService.Cancel(draft)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Edit session discarded"})
}

// AddFiles godoc
// @Summary Stage files for upload
// @Description Add "files" parts to the draft; they upload on commit
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} services.Draft
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit/files [post]
func (h *DraftHandler) AddFiles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	uploads, err := formUploads(c, "files")
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No files in request")
	}

	for _, up := range uploads {
		h.draftService.AddLocalFile(draft, up.Name, up.Content)
	}
	return c.JSON(http.StatusOK, draft)
}

// RemoveFile godoc
// @Summary Remove a staged file
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Param stagingKey path string true "Staging key"
// @Success 200 {object} services.Draft
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit/files/{stagingKey} [delete]
func (h *DraftHandler) RemoveFile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	if !h.draftService.RemoveLocalFile(draft, c.Param("stagingKey")) {
		return echo.NewHTTPError(http.StatusNotFound, "No staged file with that key")
	}
	return c.JSON(http.StatusOK, draft)
}

// ToggleFileDeletion godoc
// @Summary Toggle an attachment's deletion mark
// @Description Mark a server-side attachment for deletion on commit; marking again unmarks it
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Param fileId path int true "Attachment ID"
// @Success 200 {object} services.Draft
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit/files/{fileId}/toggle-delete [post]
func (h *DraftHandler) ToggleFileDeletion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "fileId")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	if err := h.draftService.MarkFileForDeletion(draft, fileID); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, draft)
}

// CommitEdit godoc
// @Summary Commit the edit session
// @Description Submit the draft to the backend; on success the draft closes and the collection reloads
// @Tags drafts
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} entities.Schedule
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/edit/commit [post]
func (h *DraftHandler) CommitEdit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	draft, err := h.draftService.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	updated, err := h.draftService.Commit(c.Request().Context(), draft)
	if err != nil {
		h.logger.Error("Commit failed", "error", err, "schedule_id", id)
		return mapDomainError(err)
	}

	h.scheduleService.ApplyCommitted(c.Request().Context(), updated)
	return c.JSON(http.StatusOK, updated)
}
