package services

import (
	"errors"
	"testing"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
)

func sched(id int64, date string) *entities.Schedule {
	return &entities.Schedule{
		ScheduleID:   id,
		CompanyName:  "company",
		Title:        "interview",
		ScheduleDate: date,
	}
}

func groupDates(view entities.CollectionView) []string {
	out := make([]string, 0, len(view.Groups))
	for _, g := range view.Groups {
		out = append(out, g.Date)
	}
	return out
}

func TestDeriveViewOrdering(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		now   time.Time
		dates []string
		want  []string
	}{
		{
			name:  "upcoming before past",
			now:   now,
			dates: []string{"2026-03-01", "2026-03-20", "2026-03-05", "2026-03-15"},
			want:  []string{"2026-03-15", "2026-03-20", "2026-03-01", "2026-03-05"},
		},
		{
			name:  "all upcoming ascending",
			now:   now,
			dates: []string{"2026-04-01", "2026-03-12", "2026-03-25"},
			want:  []string{"2026-03-12", "2026-03-25", "2026-04-01"},
		},
		{
			name:  "all past ascending",
			now:   now,
			dates: []string{"2026-02-01", "2026-01-15", "2026-02-20"},
			want:  []string{"2026-01-15", "2026-02-01", "2026-02-20"},
		},
		{
			// Midnight of today is before a 09:00 now, so today is past.
			name:  "today counts as past after midnight",
			now:   now,
			dates: []string{"2026-03-09", "2026-03-10"},
			want:  []string{"2026-03-09", "2026-03-10"},
		},
		{
			// At exactly midnight today has not started, so it is upcoming.
			name:  "today is upcoming at midnight",
			now:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
			dates: []string{"2026-03-09", "2026-03-10"},
			want:  []string{"2026-03-10", "2026-03-09"},
		},
		{
			name:  "empty input",
			now:   now,
			dates: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]*entities.Schedule, 0, len(tt.dates))
			for i, d := range tt.dates {
				records = append(records, sched(int64(i+1), d))
			}

			view, err := DeriveView(records, tt.now)
			if err != nil {
				t.Fatalf("DeriveView returned error: %v", err)
			}

			got := groupDates(view)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d groups %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("group %d: got date %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDeriveViewGroupsSameDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	records := []*entities.Schedule{
		sched(1, "2026-03-12"),
		sched(2, "2026-03-14"),
		sched(3, "2026-03-12"),
	}

	view, err := DeriveView(records, now)
	if err != nil {
		t.Fatalf("DeriveView returned error: %v", err)
	}

	if len(view.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(view.Groups))
	}
	if view.Groups[0].Date != "2026-03-12" || len(view.Groups[0].Schedules) != 2 {
		t.Errorf("first group wrong: %+v", view.Groups[0])
	}

	// Stable: records 1 and 3 share a date and keep their input order.
	if view.Groups[0].Schedules[0].ScheduleID != 1 || view.Groups[0].Schedules[1].ScheduleID != 3 {
		t.Errorf("same-date records reordered: got %d then %d",
			view.Groups[0].Schedules[0].ScheduleID, view.Groups[0].Schedules[1].ScheduleID)
	}

	if view.Len() != 3 {
		t.Errorf("view.Len() = %d, want 3", view.Len())
	}
}

func TestDeriveViewDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	records := []*entities.Schedule{
		sched(1, "2026-03-20"),
		sched(2, "2026-02-01"),
		sched(3, "2026-03-20"),
		sched(4, "2026-03-11"),
	}

	first, err := DeriveView(records, now)
	if err != nil {
		t.Fatalf("DeriveView returned error: %v", err)
	}
	second, err := DeriveView(records, now)
	if err != nil {
		t.Fatalf("DeriveView returned error: %v", err)
	}

	firstIDs := first.Records()
	secondIDs := second.Records()
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("derivations differ in length: %d vs %d", len(firstIDs), len(secondIDs))
	}
	for i := range firstIDs {
		if firstIDs[i].ScheduleID != secondIDs[i].ScheduleID {
			t.Errorf("position %d differs between derivations", i)
		}
	}

	// Input order must be untouched.
	wantInput := []int64{1, 2, 3, 4}
	for i, rec := range records {
		if rec.ScheduleID != wantInput[i] {
			t.Errorf("input slice mutated at %d: got id %d", i, rec.ScheduleID)
		}
	}
}

func TestDeriveViewInvalidDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	records := []*entities.Schedule{
		sched(1, "2026-03-12"),
		sched(2, "not-a-date"),
	}

	_, err := DeriveView(records, now)
	if !errors.Is(err, entities.ErrInvalidScheduleDate) {
		t.Fatalf("expected ErrInvalidScheduleDate, got %v", err)
	}
}
