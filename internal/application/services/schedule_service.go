package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// defaultPageSize mirrors the page size the list screen loads with.
const defaultPageSize = 100

// ScheduleService is the list-detail controller. It owns the canonical
// in-memory collection: the schedules most recently fetched from the
// backend, replaced wholesale on every load. Selection is a purely local
// lookup against that collection; after any acknowledged mutation the
// whole collection is re-fetched rather than patched in place, so it never
// silently drifts from the server.
type ScheduleService struct {
	api    ports.ScheduleAPI
	logger *logger.Logger

	mu        sync.RWMutex
	canonical []*entities.Schedule
	loaded    bool
}

// NewScheduleService creates a new schedule service
func NewScheduleService(api ports.ScheduleAPI, logger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		api:    api,
		logger: logger,
	}
}

// LoadAll fetches the full collection and replaces the canonical copy.
// On failure the previous canonical collection is left untouched and the
// error is surfaced as retryable to the caller.
//
// Two overlapping loads resolve in whichever order the responses arrive;
// the later writer wins. That matches the source behavior and is not
// defended against here.
func (s *ScheduleService) LoadAll(ctx context.Context) ([]*entities.Schedule, error) {
	records, err := s.api.List(ctx, ports.ScheduleFilter{Page: 0, Size: defaultPageSize})
	if err != nil {
		s.logger.Error("Failed to load schedules", "error", err)
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}

	s.mu.Lock()
	s.canonical = records
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Schedules loaded", "count", len(records))
	return s.snapshot(), nil
}

// Canonical returns a snapshot of the current canonical collection.
func (s *ScheduleService) Canonical() []*entities.Schedule {
	return s.snapshot()
}

// Loaded reports whether at least one load has succeeded.
func (s *ScheduleService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Select looks up an id in the canonical collection. No network call is
// made; an id that is absent (deleted elsewhere, or reached via a stale
// link) yields ErrScheduleNotFound for the caller to present as a
// not-found state.
func (s *ScheduleService) Select(id int64) (*entities.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.canonical {
		if rec.ScheduleID == id {
			return rec.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", entities.ErrScheduleNotFound, id)
}

// View derives the grouped calendar view from the canonical collection.
func (s *ScheduleService) View(now time.Time) (entities.CollectionView, error) {
	return DeriveView(s.snapshot(), now)
}

// Create registers a new schedule with the backend, then reloads the
// canonical collection.
func (s *ScheduleService) Create(ctx context.Context, req ports.CreateScheduleRequest, files []ports.FileUpload) (*entities.Schedule, error) {
	created, err := s.api.Create(ctx, req, files)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.logger.Info("Schedule created", "schedule_id", created.ScheduleID, "title", created.Title)

	s.afterMutation(ctx)
	return created, nil
}

// Delete removes a schedule. The record is dropped from the canonical
// collection immediately on acknowledgment, then the collection is
// reloaded.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Select(id); err != nil {
		return err
	}

	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.mu.Lock()
	kept := s.canonical[:0]
	for _, rec := range s.canonical {
		if rec.ScheduleID != id {
			kept = append(kept, rec)
		}
	}
	s.canonical = kept
	s.mu.Unlock()

	s.logger.Info("Schedule deleted", "schedule_id", id)

	s.afterMutation(ctx)
	return nil
}

// ApplyCommitted replaces the canonical record for updated.ScheduleID with
// the record the backend returned from a draft commit. The server copy is
// authoritative: server-computed fields such as updatedDate are only known
// from it, so no field of the stale local record survives. A reload
// follows, as after every mutation.
func (s *ScheduleService) ApplyCommitted(ctx context.Context, updated *entities.Schedule) {
	s.mu.Lock()
	for i, rec := range s.canonical {
		if rec.ScheduleID == updated.ScheduleID {
			s.canonical[i] = updated.Clone()
			break
		}
	}
	s.mu.Unlock()

	s.afterMutation(ctx)
}

// afterMutation unconditionally re-fetches the collection. A failed reload
// keeps the locally adjusted state and logs; the next successful load
// reconverges with the server.
func (s *ScheduleService) afterMutation(ctx context.Context) {
	if _, err := s.LoadAll(ctx); err != nil {
		s.logger.Warn("Reload after mutation failed", "error", err)
	}
}

func (s *ScheduleService) snapshot() []*entities.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Schedule, len(s.canonical))
	copy(out, s.canonical)
	return out
}
