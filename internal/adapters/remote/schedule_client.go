package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// ScheduleClient implements ports.ScheduleAPI against the backend's
// /schedules resource.
type ScheduleClient struct {
	client *Client
}

func NewScheduleClient(client *Client) *ScheduleClient {
	return &ScheduleClient{client: client}
}

// timestampLayout is the backend's zoneless datetime serialization.
const timestampLayout = "2006-01-02T15:04:05"

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(timestampLayout, raw, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

type wireScheduleDetail struct {
	DetailID int64  `json:"detailId"`
	Title    string `json:"detailTitle"`
	Content  string `json:"detailContent"`
}

type wireScheduleFile struct {
	FileID       int64  `json:"fileId"`
	OriginalName string `json:"originalFileName"`
	FilePath     string `json:"filePath"`
}

type wireSchedule struct {
	ScheduleID   int64                `json:"scheduleId"`
	CompanyID    int64                `json:"companyId"`
	CompanyName  string               `json:"companyName"`
	Title        string               `json:"title"`
	ScheduleDate string               `json:"scheduleDate"`
	Details      []wireScheduleDetail `json:"details"`
	Files        []wireScheduleFile   `json:"files"`
	CreatedDate  string               `json:"createdDate"`
	UpdatedDate  string               `json:"updatedDate"`
}

func (w wireSchedule) toEntity() *entities.Schedule {
	s := &entities.Schedule{
		ScheduleID:   w.ScheduleID,
		CompanyID:    w.CompanyID,
		CompanyName:  w.CompanyName,
		Title:        w.Title,
		ScheduleDate: w.ScheduleDate,
		Details:      make([]entities.ScheduleDetail, 0, len(w.Details)),
		Files:        make([]entities.ScheduleFile, 0, len(w.Files)),
		CreatedDate:  parseTimestamp(w.CreatedDate),
		UpdatedDate:  parseTimestamp(w.UpdatedDate),
	}
	for _, d := range w.Details {
		s.Details = append(s.Details, entities.ScheduleDetail{
			DetailID: d.DetailID,
			Title:    d.Title,
			Content:  d.Content,
		})
	}
	for _, f := range w.Files {
		s.Files = append(s.Files, entities.ScheduleFile{
			FileID:       f.FileID,
			OriginalName: f.OriginalName,
			FilePath:     f.FilePath,
		})
	}
	return s
}

func (c *ScheduleClient) List(ctx context.Context, filter ports.ScheduleFilter) ([]*entities.Schedule, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}

	var wires []wireSchedule
	if err := c.client.getJSON(ctx, "/schedules", query, &wires); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	out := make([]*entities.Schedule, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *ScheduleClient) Get(ctx context.Context, id int64) (*entities.Schedule, error) {
	var wire wireSchedule
	if err := c.client.getJSON(ctx, fmt.Sprintf("/schedules/%d", id), nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule %d: %w", id, err)
	}
	return wire.toEntity(), nil
}

func (c *ScheduleClient) Create(ctx context.Context, req ports.CreateScheduleRequest, files []ports.FileUpload) (*entities.Schedule, error) {
	var wire wireSchedule
	err := c.client.sendMultipart(ctx, http.MethodPost, "/schedules", req, uploadParts("files", files), &wire)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return wire.toEntity(), nil
}

func (c *ScheduleClient) Update(ctx context.Context, id int64, req ports.UpdateScheduleRequest, files []ports.FileUpload) (*entities.Schedule, error) {
	var wire wireSchedule
	err := c.client.sendMultipart(ctx, http.MethodPut, fmt.Sprintf("/schedules/%d", id), req, uploadParts("files", files), &wire)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule %d: %w", id, err)
	}
	return wire.toEntity(), nil
}

func (c *ScheduleClient) Delete(ctx context.Context, id int64) error {
	req, err := c.client.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/schedules/%d", id), nil, nil, "")
	if err != nil {
		return err
	}
	if _, _, err := c.client.roundTrip(req); err != nil {
		return fmt.Errorf("failed to delete schedule %d: %w", id, err)
	}
	return nil
}
