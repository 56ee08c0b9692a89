package keyword

import "time"

type Category string

const (
	CategoryUser     Category = "user"
	CategoryDog      Category = "dog"
	CategoryActivity Category = "activity"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUser, CategoryDog, CategoryActivity:
		return true
	}
	return false
}

type Keyword struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	Category  Category  `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Kind names an entity type that can carry keywords.
type Kind string

const (
	KindUser  Kind = "user"
	KindDog   Kind = "dog"
	KindGroup Kind = "group"
)

// Ref points at one taggable entity.
type Ref struct {
	Kind Kind
	ID   string
}

func UserRef(id string) Ref  { return Ref{Kind: KindUser, ID: id} }
func DogRef(id string) Ref   { return Ref{Kind: KindDog, ID: id} }
func GroupRef(id string) Ref { return Ref{Kind: KindGroup, ID: id} }

func (r Ref) Validate() error {
	if r.ID == "" {
		return ErrInvalidRef
	}
	switch r.Kind {
	case KindUser, KindDog, KindGroup:
		return nil
	}
	return ErrInvalidRef
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Keywordable is one association row between a taggable entity and a keyword.
type Keywordable struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	KeywordableType Kind      `gorm:"type:varchar(16);not null;uniqueIndex:idx_keywordables_target_keyword"`
	KeywordableID   string    `gorm:"not null;uniqueIndex:idx_keywordables_target_keyword"`
	KeywordID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_keywordables_target_keyword"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`

	Keyword Keyword `gorm:"foreignKey:KeywordID;references:ID;constraint:OnDelete:CASCADE"`
}

func (r Ref) link(keywordID string) Keywordable {
	return Keywordable{KeywordableType: r.Kind, KeywordableID: r.ID, KeywordID: keywordID}
}
