package services

import (
	"sort"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
)

// DeriveView orders and groups schedules for calendar display. Records are
// partitioned into upcoming and past by comparing the schedule date at
// midnight against now; upcoming records come first, each partition is
// sorted by ascending date, and records sharing a date land in one group.
// The sort is stable, so records with equal dates keep their input order.
//
// Pure function of its inputs: the input slice is not mutated and the same
// records with the same now always yield the same view. A record whose
// date does not parse fails the whole derivation with
// entities.ErrInvalidScheduleDate; a bad record is never silently dropped.
func DeriveView(records []*entities.Schedule, now time.Time) (entities.CollectionView, error) {
	type classified struct {
		rec  *entities.Schedule
		at   time.Time
		past bool
	}

	items := make([]classified, 0, len(records))
	for _, rec := range records {
		at, err := rec.DateAtMidnight()
		if err != nil {
			return entities.CollectionView{}, err
		}
		items = append(items, classified{rec: rec, at: at, past: at.Before(now)})
	}

	// Composite key: upcoming before past, then ascending date.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].past != items[j].past {
			return !items[i].past
		}
		return items[i].at.Before(items[j].at)
	})

	var view entities.CollectionView
	index := make(map[string]int, len(items))
	for _, it := range items {
		key := it.rec.ScheduleDate
		if gi, ok := index[key]; ok {
			view.Groups[gi].Schedules = append(view.Groups[gi].Schedules, it.rec)
			continue
		}
		index[key] = len(view.Groups)
		view.Groups = append(view.Groups, entities.DateGroup{
			Date:      key,
			Schedules: []*entities.Schedule{it.rec},
		})
	}

	return view, nil
}
