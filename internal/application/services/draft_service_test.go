package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
)

func schedWithFiles(id int64, date string, fileIDs ...int64) *entities.Schedule {
	s := sched(id, date)
	s.Details = []entities.ScheduleDetail{
		{DetailID: 10, Title: "first round", Content: "online"},
	}
	for _, fid := range fileIDs {
		s.Files = append(s.Files, entities.ScheduleFile{FileID: fid, OriginalName: "resume.pdf"})
	}
	return s
}

func newTestDraftService(api *fakeScheduleAPI) *DraftService {
	return NewDraftService(api, logger.NewNop())
}

func TestBeginEditSnapshotsRecord(t *testing.T) {
	svc := newTestDraftService(&fakeScheduleAPI{})
	record := schedWithFiles(1, "2026-03-12", 7)

	draft := svc.BeginEdit(record)

	// Editing the draft never leaks into the record it was opened from.
	draft.Title = "changed"
	draft.Details[0].Content = "changed"
	if record.Title == "changed" || record.Details[0].Content == "changed" {
		t.Error("draft shares state with the source record")
	}

	if draft.ScheduleID != 1 || draft.ScheduleDate != "2026-03-12" {
		t.Errorf("draft fields not copied: %+v", draft)
	}
	if len(draft.FilesToUpload) != 0 || len(draft.FilesToDelete) != 0 {
		t.Errorf("new draft carries file changes: %+v", draft)
	}
}

func TestBeginEditResetsExistingDraft(t *testing.T) {
	svc := newTestDraftService(&fakeScheduleAPI{})
	record := schedWithFiles(1, "2026-03-12", 7)

	first := svc.BeginEdit(record)
	first.Title = "half-finished edit"
	if err := svc.MarkFileForDeletion(first, 7); err != nil {
		t.Fatalf("MarkFileForDeletion failed: %v", err)
	}

	second := svc.BeginEdit(record)
	if second.Title != record.Title {
		t.Errorf("re-open kept stale title %q", second.Title)
	}
	if len(second.FilesToDelete) != 0 {
		t.Error("re-open kept deletion marks")
	}

	current, err := svc.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if current != second {
		t.Error("Get did not return the fresh draft")
	}
}

func TestGetWithoutDraft(t *testing.T) {
	svc := newTestDraftService(&fakeScheduleAPI{})
	if _, err := svc.Get(42); !errors.Is(err, entities.ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestMarkFileForDeletionToggles(t *testing.T) {
	svc := newTestDraftService(&fakeScheduleAPI{})
	draft := svc.BeginEdit(schedWithFiles(1, "2026-03-12", 7, 8))

	if err := svc.MarkFileForDeletion(draft, 7); err != nil {
		t.Fatalf("first mark failed: %v", err)
	}
	if !draft.MarkedForDeletion(7) {
		t.Error("file 7 not marked")
	}

	// Marking again restores the prior state.
	if err := svc.MarkFileForDeletion(draft, 7); err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if draft.MarkedForDeletion(7) {
		t.Error("file 7 still marked after toggle")
	}

	// Unknown attachments are rejected, not silently accepted.
	if err := svc.MarkFileForDeletion(draft, 999); !errors.Is(err, entities.ErrAttachmentNotFound) {
		t.Errorf("expected ErrAttachmentNotFound, got %v", err)
	}
}

func TestAddAndRemoveLocalFiles(t *testing.T) {
	svc := newTestDraftService(&fakeScheduleAPI{})
	draft := svc.BeginEdit(sched(1, "2026-03-12"))

	a := svc.AddLocalFile(draft, "a.pdf", []byte("a"))
	b := svc.AddLocalFile(draft, "b.pdf", []byte("b"))
	if a.StagingKey == "" || a.StagingKey == b.StagingKey {
		t.Fatalf("staging keys not unique: %q vs %q", a.StagingKey, b.StagingKey)
	}
	if len(draft.FilesToUpload) != 2 {
		t.Fatalf("expected 2 staged files, got %d", len(draft.FilesToUpload))
	}

	if !svc.RemoveLocalFile(draft, a.StagingKey) {
		t.Error("RemoveLocalFile failed for a known key")
	}
	if svc.RemoveLocalFile(draft, a.StagingKey) {
		t.Error("RemoveLocalFile succeeded twice for the same key")
	}
	if len(draft.FilesToUpload) != 1 || draft.FilesToUpload[0].Name != "b.pdf" {
		t.Errorf("wrong file removed: %+v", draft.FilesToUpload)
	}
}

func TestCommitSendsDraftAndDiscardsIt(t *testing.T) {
	api := &fakeScheduleAPI{}
	svc := newTestDraftService(api)

	draft := svc.BeginEdit(schedWithFiles(1, "2026-03-12", 7))
	svc.Apply(draft, "acme", "final interview", "2026-03-15", []entities.ScheduleDetail{
		{DetailID: 10, Title: "first round", Content: "moved online"},
		{Title: "new item", Content: "bring id"},
	})
	svc.AddLocalFile(draft, "notes.txt", []byte("notes"))
	if err := svc.MarkFileForDeletion(draft, 7); err != nil {
		t.Fatalf("MarkFileForDeletion failed: %v", err)
	}

	updated, err := svc.Commit(context.Background(), draft)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if updated.Title != "final interview" {
		t.Errorf("server record not returned: %+v", updated)
	}

	// The wire request carries the full draft.
	if api.lastUpdate.CompanyName != "acme" || api.lastUpdate.ScheduleDate != "2026-03-15" {
		t.Errorf("update request wrong: %+v", api.lastUpdate)
	}
	if len(api.lastUpdate.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(api.lastUpdate.Details))
	}
	if api.lastUpdate.Details[0].DetailID == nil || *api.lastUpdate.Details[0].DetailID != 10 {
		t.Error("existing detail lost its id")
	}
	if api.lastUpdate.Details[1].DetailID != nil {
		t.Error("new detail should have no id")
	}
	if len(api.lastUpdate.FilesToDelete) != 1 || api.lastUpdate.FilesToDelete[0] != 7 {
		t.Errorf("delete set wrong: %v", api.lastUpdate.FilesToDelete)
	}
	if len(api.lastUploads) != 1 || api.lastUploads[0].Name != "notes.txt" {
		t.Errorf("uploads wrong: %+v", api.lastUploads)
	}

	// Draft is gone after a successful commit.
	if _, err := svc.Get(1); !errors.Is(err, entities.ErrDraftNotFound) {
		t.Errorf("draft survived successful commit: %v", err)
	}
}

func TestCommitFailureKeepsDraft(t *testing.T) {
	api := &fakeScheduleAPI{updateErr: errors.New("backend down")}
	svc := newTestDraftService(api)

	draft := svc.BeginEdit(schedWithFiles(1, "2026-03-12", 7))
	svc.AddLocalFile(draft, "notes.txt", []byte("notes"))
	if err := svc.MarkFileForDeletion(draft, 7); err != nil {
		t.Fatalf("MarkFileForDeletion failed: %v", err)
	}

	if _, err := svc.Commit(context.Background(), draft); err == nil {
		t.Fatal("expected commit to fail")
	}

	// Everything the user entered is still there for retry.
	kept, err := svc.Get(1)
	if err != nil {
		t.Fatalf("draft lost after failed commit: %v", err)
	}
	if len(kept.FilesToUpload) != 1 || !kept.MarkedForDeletion(7) {
		t.Errorf("draft state lost: %+v", kept)
	}

	// Retry succeeds once the backend recovers.
	api.mu.Lock()
	api.updateErr = nil
	api.mu.Unlock()
	if _, err := svc.Commit(context.Background(), kept); err != nil {
		t.Fatalf("retry commit failed: %v", err)
	}
}

func TestCommitRejectsConcurrentSubmission(t *testing.T) {
	block := make(chan struct{})
	api := &fakeScheduleAPI{updateBlock: block}
	svc := newTestDraftService(api)

	draft := svc.BeginEdit(sched(1, "2026-03-12"))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Commit(context.Background(), draft)
		done <- err
	}()

	// Wait for the first commit to reach the backend call.
	for {
		api.mu.Lock()
		started := api.lastUpdate.ScheduleDate != ""
		api.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Commit(context.Background(), draft); !errors.Is(err, entities.ErrCommitInFlight) {
		t.Errorf("expected ErrCommitInFlight, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
}
