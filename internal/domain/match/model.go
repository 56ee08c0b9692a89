package match

import (
	"strings"
	"time"
)

type Action string

const (
	ActionLike Action = "LIKE"
	ActionPass Action = "PASS"
)

// ParseAction accepts LIKE and PASS in any case; DISLIKE is kept as an
// alias of PASS for older mobile clients.
func ParseAction(value string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "LIKE":
		return ActionLike, nil
	case "PASS", "DISLIKE":
		return ActionPass, nil
	}
	return "", ErrInvalidAction
}

type UserMatch struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"not null;uniqueIndex:idx_user_matches_pair"`
	TargetUserID string    `gorm:"not null;index;uniqueIndex:idx_user_matches_pair"`
	Action       Action    `gorm:"type:varchar(16);not null"`
	MatchScore   *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type RecordResult struct {
	Match  UserMatch
	Mutual bool
}
