package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// Draft is the working copy of one schedule during an edit session. It is
// discarded on cancel or successful commit; on a failed commit it is kept
// exactly as it was so the user can retry without re-entering anything.
type Draft struct {
	ScheduleID    int64                     `json:"scheduleId"`
	CompanyName   string                    `json:"companyName"`
	Title         string                    `json:"title"`
	ScheduleDate  string                    `json:"scheduleDate"`
	Details       []entities.ScheduleDetail `json:"details"`
	FilesToUpload []ports.FileUpload        `json:"filesToUpload"`
	FilesToDelete []int64                   `json:"filesToDelete"`

	// original is the canonical record snapshot at BeginEdit time. Marking
	// a file for deletion is only legal against this set.
	original *entities.Schedule
	inFlight bool
}

// MarkedForDeletion reports whether an attachment is currently marked.
func (d *Draft) MarkedForDeletion(fileID int64) bool {
	for _, id := range d.FilesToDelete {
		if id == fileID {
			return true
		}
	}
	return false
}

// DraftService runs edit sessions, one per schedule at a time, and merges
// them back into the server-of-record on commit. It never touches the
// canonical collection directly; the controller reloads after a commit.
type DraftService struct {
	api    ports.ScheduleAPI
	logger *logger.Logger

	mu     sync.Mutex
	drafts map[int64]*Draft
}

// NewDraftService creates a new draft service
func NewDraftService(api ports.ScheduleAPI, logger *logger.Logger) *DraftService {
	return &DraftService{
		api:    api,
		logger: logger,
		drafts: make(map[int64]*Draft),
	}
}

// BeginEdit opens an edit session by deep-copying the record's scalar
// fields and details. Re-opening a schedule that already has a draft
// resets the session to a fresh copy, matching the behavior of re-entering
// the edit screen.
func (s *DraftService) BeginEdit(record *entities.Schedule) *Draft {
	snapshot := record.Clone()
	draft := &Draft{
		ScheduleID:    snapshot.ScheduleID,
		CompanyName:   snapshot.CompanyName,
		Title:         snapshot.Title,
		ScheduleDate:  snapshot.ScheduleDate,
		Details:       append([]entities.ScheduleDetail(nil), snapshot.Details...),
		FilesToUpload: []ports.FileUpload{},
		FilesToDelete: []int64{},
		original:      snapshot,
	}

	s.mu.Lock()
	s.drafts[draft.ScheduleID] = draft
	s.mu.Unlock()

	return draft
}

// Get returns the open draft for a schedule, or ErrDraftNotFound.
func (s *DraftService) Get(scheduleID int64) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[scheduleID]
	if !ok {
		return nil, fmt.Errorf("%w: schedule %d", entities.ErrDraftNotFound, scheduleID)
	}
	return draft, nil
}

// Apply overwrites the draft's editable fields with the given values. The
// file sets are untouched; staged uploads and deletion marks survive field
// edits within the same session.
func (s *DraftService) Apply(draft *Draft, companyName, title, scheduleDate string, details []entities.ScheduleDetail) {
	s.mu.Lock()
	draft.CompanyName = companyName
	draft.Title = title
	draft.ScheduleDate = scheduleDate
	draft.Details = append([]entities.ScheduleDetail(nil), details...)
	s.mu.Unlock()
}

// MarkFileForDeletion toggles an attachment's membership in the draft's
// delete set: marking twice restores the draft to its prior state. Only
// attachments present on the original record can be marked, which prevents
// asking the server to delete a file that was never there.
func (s *DraftService) MarkFileForDeletion(draft *Draft, fileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !draft.original.HasFile(fileID) {
		return fmt.Errorf("%w: file %d on schedule %d", entities.ErrAttachmentNotFound, fileID, draft.ScheduleID)
	}

	for i, id := range draft.FilesToDelete {
		if id == fileID {
			draft.FilesToDelete = append(draft.FilesToDelete[:i], draft.FilesToDelete[i+1:]...)
			return nil
		}
	}
	draft.FilesToDelete = append(draft.FilesToDelete, fileID)
	return nil
}

// AddLocalFile stages a file for upload on the next commit. There is no
// count or size limit at this layer; the backend rejects oversized
// payloads on its own.
func (s *DraftService) AddLocalFile(draft *Draft, name string, content []byte) ports.FileUpload {
	upload := ports.FileUpload{
		StagingKey: uuid.NewString(),
		Name:       name,
		Content:    content,
	}

	s.mu.Lock()
	draft.FilesToUpload = append(draft.FilesToUpload, upload)
	s.mu.Unlock()

	return upload
}

// RemoveLocalFile drops a staged upload by its staging key.
func (s *DraftService) RemoveLocalFile(draft *Draft, stagingKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, up := range draft.FilesToUpload {
		if up.StagingKey == stagingKey {
			draft.FilesToUpload = append(draft.FilesToUpload[:i], draft.FilesToUpload[i+1:]...)
			return true
		}
	}
	return false
}

// Commit serializes the draft into the full-record update the backend
// expects and submits it together with staged uploads and the delete set.
// While a commit is in flight the draft rejects re-submission, which is
// only a guard against duplicate requests from repeated clicks.
//
// On success the draft is discarded and the server's authoritative record
// returned; the caller must replace its canonical copy with that record.
// On failure the draft is left untouched for retry.
func (s *DraftService) Commit(ctx context.Context, draft *Draft) (*entities.Schedule, error) {
	s.mu.Lock()
	if draft.inFlight {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: schedule %d", entities.ErrCommitInFlight, draft.ScheduleID)
	}
	draft.inFlight = true

	req := ports.UpdateScheduleRequest{
		CompanyName:   draft.CompanyName,
		Title:         draft.Title,
		ScheduleDate:  draft.ScheduleDate,
		Details:       detailRequests(draft.Details),
		FilesToDelete: append([]int64(nil), draft.FilesToDelete...),
	}
	uploads := append([]ports.FileUpload(nil), draft.FilesToUpload...)
	s.mu.Unlock()

	updated, err := s.api.Update(ctx, draft.ScheduleID, req, uploads)

	s.mu.Lock()
	defer s.mu.Unlock()
	draft.inFlight = false

	if err != nil {
		s.logger.Error("Draft commit failed", "schedule_id", draft.ScheduleID, "error", err)
		return nil, fmt.Errorf("failed to commit draft: %w", err)
	}

	delete(s.drafts, draft.ScheduleID)
	s.logger.Info("Draft committed", "schedule_id", updated.ScheduleID,
		"uploads", len(uploads), "deletions", len(req.FilesToDelete))

	return updated, nil
}

// Cancel discards the edit session.
func (s *DraftService) Cancel(draft *Draft) {
	s.mu.Lock()
	delete(s.drafts, draft.ScheduleID)
	s.mu.Unlock()
}

func detailRequests(details []entities.ScheduleDetail) []ports.ScheduleDetailRequest {
	out := make([]ports.ScheduleDetailRequest, 0, len(details))
	for _, d := range details {
		d := d
		req := ports.ScheduleDetailRequest{Title: d.Title, Content: d.Content}
		if d.DetailID != 0 {
			req.DetailID = &d.DetailID
		}
		out = append(out, req)
	}
	return out
}
