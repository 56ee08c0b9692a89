package stats

import (
	"context"
	"sync"
	"time"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

const (
	dateLayout             = "2006-01-02"
	maxRangeDays           = 366
	defaultLookbackWeeks   = 12
	defaultSummaryCacheTTL = time.Minute
)

type Service struct {
	repo     Repository
	cache    summaryCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithCacheTTL(repo, defaultSummaryCacheTTL)
}

// NewServiceWithCacheTTL caches summaries per group; ttl <= 0 disables the cache.
func NewServiceWithCacheTTL(repo Repository, ttl time.Duration) *Service {
	if ttl < 0 {
		ttl = 0
	}
	return &Service{
		repo:     repo,
		cache:    summaryCache{items: make(map[string]summaryCacheItem)},
		cacheTTL: ttl,
		now:      time.Now,
	}
}

func (s *Service) Summary(ctx context.Context, groupID string) (GroupSummary, error) {
	now := s.now()
	if s.cacheTTL > 0 {
		if summary, ok := s.cache.Get(groupID, now); ok {
			return summary, nil
		}
	}

	counts, err := s.repo.MembershipCounts(ctx, groupID)
	if err != nil {
		return GroupSummary{}, err
	}
	total, upcoming, err := s.repo.WalkCounts(ctx, groupID, now)
	if err != nil {
		return GroupSummary{}, err
	}

	summary := GroupSummary{
		GroupID:         groupID,
		ActiveMembers:   counts[groupdomain.StatusActive],
		PendingRequests: counts[groupdomain.StatusRequested],
		PendingInvites:  counts[groupdomain.StatusInvited],
		Banned:          counts[groupdomain.StatusBanned],
		TotalWalks:      total,
		UpcomingWalks:   upcoming,
	}
	if s.cacheTTL > 0 {
		s.cache.Set(groupID, summary, now.Add(s.cacheTTL))
	}
	return summary, nil
}

// WalkTimeseries counts walks by start bucket. Empty buckets inside the range
// are returned with a zero count. Weeks start on Monday.
func (s *Service) WalkTimeseries(ctx context.Context, groupID string, filter TimeseriesFilter) ([]TimeseriesPoint, error) {
	filter, err := s.normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.WalkTimeseries(ctx, groupID, filter)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, point := range rows {
		counts[point.Period] += point.Count
	}

	var points []TimeseriesPoint
	for bucket := BucketStart(filter.From, filter.GroupBy); !bucket.After(filter.To); bucket = nextBucket(bucket, filter.GroupBy) {
		period := bucket.Format(dateLayout)
		points = append(points, TimeseriesPoint{Period: period, Count: counts[period]})
	}
	return points, nil
}

func (s *Service) normalizeFilter(filter TimeseriesFilter) (TimeseriesFilter, error) {
	switch filter.GroupBy {
	case "":
		filter.GroupBy = GroupByWeek
	case GroupByDay, GroupByWeek:
	default:
		return TimeseriesFilter{}, ErrInvalidGroupBy
	}

	if filter.To.IsZero() {
		filter.To = s.now()
	}
	filter.To = truncateDay(filter.To)
	if filter.From.IsZero() {
		filter.From = filter.To.AddDate(0, 0, -7*defaultLookbackWeeks+1)
	}
	filter.From = truncateDay(filter.From)

	if filter.To.Before(filter.From) {
		return TimeseriesFilter{}, ErrInvalidRange
	}
	if daysBetweenInclusive(filter.From, filter.To) > maxRangeDays {
		return TimeseriesFilter{}, ErrRangeTooLarge
	}
	return filter, nil
}

// BucketStart returns the first day of the bucket holding t.
func BucketStart(t time.Time, groupBy GroupBy) time.Time {
	day := truncateDay(t)
	if groupBy == GroupByWeek {
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}
	return day
}

func nextBucket(t time.Time, groupBy GroupBy) time.Time {
	if groupBy == GroupByWeek {
		return t.AddDate(0, 0, 7)
	}
	return t.AddDate(0, 0, 1)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetweenInclusive(from, to time.Time) int {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

type summaryCache struct {
	mu    sync.RWMutex
	items map[string]summaryCacheItem
}

type summaryCacheItem struct {
	summary   GroupSummary
	expiresAt time.Time
}

func (c *summaryCache) Get(key string, now time.Time) (GroupSummary, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return GroupSummary{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return GroupSummary{}, false
	}
	return item.summary, true
}

func (c *summaryCache) Set(key string, summary GroupSummary, expiresAt time.Time) {
	c.mu.Lock()
	c.items[key] = summaryCacheItem{summary: summary, expiresAt: expiresAt}
	c.mu.Unlock()
}
