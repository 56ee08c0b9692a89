package stats

import (
	"context"
	"time"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

type Repository interface {
	MembershipCounts(ctx context.Context, groupID string) (map[groupdomain.Status]int64, error)
	WalkCounts(ctx context.Context, groupID string, now time.Time) (total, upcoming int64, err error)
	// WalkTimeseries returns non-empty buckets only, ordered by period.
	WalkTimeseries(ctx context.Context, groupID string, filter TimeseriesFilter) ([]TimeseriesPoint, error)
}
