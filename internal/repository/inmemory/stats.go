package inmemory

import (
	"context"
	"sort"
	"time"

	groupdomain "dogwalk-app-go/internal/domain/group"
	statsdomain "dogwalk-app-go/internal/domain/stats"
)

type StatsRepository struct {
	store *Store
}

func (r *StatsRepository) MembershipCounts(_ context.Context, groupID string) (map[groupdomain.Status]int64, error) {
	defer r.store.acquire(false)()

	counts := make(map[groupdomain.Status]int64)
	for _, item := range r.store.memberships {
		if item.value.GroupID == groupID {
			counts[item.value.Status]++
		}
	}
	return counts, nil
}

func (r *StatsRepository) WalkCounts(_ context.Context, groupID string, now time.Time) (int64, int64, error) {
	defer r.store.acquire(false)()

	var total, upcoming int64
	for _, item := range r.store.walks {
		if item.value.GroupID != groupID {
			continue
		}
		total++
		if !item.value.StartsAt.Before(now) {
			upcoming++
		}
	}
	return total, upcoming, nil
}

func (r *StatsRepository) WalkTimeseries(_ context.Context, groupID string, filter statsdomain.TimeseriesFilter) ([]statsdomain.TimeseriesPoint, error) {
	defer r.store.acquire(false)()

	until := filter.To.AddDate(0, 0, 1)
	counts := make(map[string]int64)
	for _, item := range r.store.walks {
		walk := item.value
		if walk.GroupID != groupID || walk.StartsAt.Before(filter.From) || !walk.StartsAt.Before(until) {
			continue
		}
		counts[statsdomain.BucketStart(walk.StartsAt, filter.GroupBy).Format("2006-01-02")]++
	}

	points := make([]statsdomain.TimeseriesPoint, 0, len(counts))
	for period, count := range counts {
		points = append(points, statsdomain.TimeseriesPoint{Period: period, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points, nil
}
