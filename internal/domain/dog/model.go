package dog

import "time"

type Dog struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	OwnerID   string     `gorm:"not null;index"`
	Name      string     `gorm:"not null"`
	Breed     *string    `gorm:"type:text"`
	BirthDate *time.Time `gorm:"type:date"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

type CreateDogInput struct {
	OwnerID   string
	Name      string
	Breed     *string
	BirthDate *time.Time
}

type UpdateDogInput struct {
	OwnerID   string
	DogID     string
	Name      *string
	Breed     *string
	BirthDate *time.Time
}
