package keyword

import "time"

// Cache holds the keyword vocabulary by exact name.
type Cache interface {
	GetByName(name string) (*Keyword, bool)
	SetMany(keywords []Keyword, ttl time.Duration)
	Clear()
}

type noopCache struct{}

func (noopCache) GetByName(string) (*Keyword, bool) {
	return nil, false
}

func (noopCache) SetMany([]Keyword, time.Duration) {}

func (noopCache) Clear() {}
