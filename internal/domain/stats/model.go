package stats

import "time"

type GroupSummary struct {
	GroupID         string
	ActiveMembers   int64
	PendingRequests int64
	PendingInvites  int64
	Banned          int64
	TotalWalks      int64
	UpcomingWalks   int64
}

type GroupBy string

const (
	GroupByDay  GroupBy = "day"
	GroupByWeek GroupBy = "week"
)

// TimeseriesFilter bounds are calendar days in UTC, both inclusive.
type TimeseriesFilter struct {
	From    time.Time
	To      time.Time
	GroupBy GroupBy
}

type TimeseriesPoint struct {
	Period string
	Count  int64
}
