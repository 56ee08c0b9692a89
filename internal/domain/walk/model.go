package walk

import "time"

type Walk struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	GroupID     string    `gorm:"type:uuid;not null;index"`
	CreatorID   string    `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	StartsAt    time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CreateWalkInput struct {
	GroupID     string
	Title       string
	Description string
	StartsAt    time.Time
}

type ListFilter struct {
	From   *time.Time
	Limit  int
	Offset int
}
