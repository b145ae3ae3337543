package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/adapters/remote"
	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// MessageResponse is a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// mapDomainError translates domain and collaborator errors into HTTP
// errors. Backend failures surface as 502 with a retryable hint so the
// UI can decide between a retry affordance and a hard error.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrScheduleNotFound),
		errors.Is(err, entities.ErrDraftNotFound),
		errors.Is(err, entities.ErrPortfolioNotFound),
		errors.Is(err, entities.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrAttachmentNotFound),
		errors.Is(err, entities.ErrInvalidScheduleDate),
		errors.Is(err, entities.ErrInvalidEntry):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrCommitInFlight):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		return echo.NewHTTPError(http.StatusBadGateway, ErrorResponse{
			Error:     err.Error(),
			Retryable: remoteErr.Retryable(),
		})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// bindMultipartDTO decodes the "dto" part of a multipart request into out
// and validates it. The upload endpoints all share this shape: one JSON
// dto part plus zero or more file parts.
func bindMultipartDTO(c echo.Context, out interface{}) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected multipart form")
	}
	values := form.Value["dto"]
	if len(values) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing dto part")
	}
	if err := json.Unmarshal([]byte(values[0]), out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dto part")
	}
	if err := c.Validate(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func readUpload(header *multipart.FileHeader) (ports.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return ports.FileUpload{}, fmt.Errorf("failed to open upload %q: %w", header.Filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return ports.FileUpload{}, fmt.Errorf("failed to read upload %q: %w", header.Filename, err)
	}
	return ports.FileUpload{Name: header.Filename, Content: content}, nil
}

// formUploads collects the file parts under the given field name. The
// endpoints accept requests with no files at all, so a missing form or
// field is not an error.
func formUploads(c echo.Context, field string) ([]ports.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var uploads []ports.FileUpload
	for _, header := range form.File[field] {
		upload, err := readUpload(header)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

// formUpload returns the first file part under the field, or nil.
func formUpload(c echo.Context, field string) (*ports.FileUpload, error) {
	uploads, err := formUploads(c, field)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	return &uploads[0], nil
}
