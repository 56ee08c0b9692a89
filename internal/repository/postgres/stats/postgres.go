package stats

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	groupdomain "dogwalk-app-go/internal/domain/group"
	statsdomain "dogwalk-app-go/internal/domain/stats"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) MembershipCounts(ctx context.Context, groupID string) (map[groupdomain.Status]int64, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	query := "SELECT m.status AS status, COUNT(*) AS count FROM group_memberships m WHERE m.group_id = ? GROUP BY m.status"
	if err := r.db.WithContext(ctx).Raw(query, groupID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count memberships: %w", err)
	}

	counts := make(map[groupdomain.Status]int64, len(rows))
	for _, row := range rows {
		counts[groupdomain.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *PostgresRepository) WalkCounts(ctx context.Context, groupID string, now time.Time) (int64, int64, error) {
	var row struct {
		Total    int64 `gorm:"column:total"`
		Upcoming int64 `gorm:"column:upcoming"`
	}
	query := "SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE w.starts_at >= ?) AS upcoming FROM walks w WHERE w.group_id = ?"
	if err := r.db.WithContext(ctx).Raw(query, now, groupID).Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("count walks: %w", err)
	}
	return row.Total, row.Upcoming, nil
}

func (r *PostgresRepository) WalkTimeseries(ctx context.Context, groupID string, filter statsdomain.TimeseriesFilter) ([]statsdomain.TimeseriesPoint, error) {
	if filter.GroupBy != statsdomain.GroupByDay && filter.GroupBy != statsdomain.GroupByWeek {
		return nil, statsdomain.ErrInvalidGroupBy
	}

	// date_trunc('week') starts weeks on Monday, matching BucketStart.
	periodExpr := fmt.Sprintf("to_char(date_trunc('%s', w.starts_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD')", filter.GroupBy)
	query := fmt.Sprintf(
		"SELECT %s AS period, COUNT(*) AS count FROM walks w WHERE w.group_id = ? AND w.starts_at >= ? AND w.starts_at < ? GROUP BY 1 ORDER BY 1",
		periodExpr,
	)

	var rows []struct {
		Period string `gorm:"column:period"`
		Count  int64  `gorm:"column:count"`
	}
	until := filter.To.AddDate(0, 0, 1)
	if err := r.db.WithContext(ctx).Raw(query, groupID, filter.From, until).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("walk timeseries: %w", err)
	}

	points := make([]statsdomain.TimeseriesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, statsdomain.TimeseriesPoint{Period: row.Period, Count: row.Count})
	}
	return points, nil
}
