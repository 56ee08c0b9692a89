package group

import "time"

type Status string

const (
	StatusInvited   Status = "INVITED"
	StatusRequested Status = "REQUESTED"
	StatusActive    Status = "ACTIVE"
	StatusBanned    Status = "BANNED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInvited, StatusRequested, StatusActive, StatusBanned:
		return true
	}
	return false
}

type Role string

const (
	RoleCreator Role = "CREATOR"
	RoleAdmin   Role = "ADMIN"
	RoleMember  Role = "MEMBER"
)

type Group struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	CreatorID   string    `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Group) TableName() string { return "walk_groups" }

type Membership struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_group_memberships_user_group"`
	GroupID   string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_group_memberships_user_group"`
	Status    Status    `gorm:"type:varchar(16);not null"`
	Role      Role      `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Membership) TableName() string { return "group_memberships" }

func (m Membership) IsActive() bool {
	return m.Status == StatusActive
}

func (m Membership) IsActiveCreator() bool {
	return m.Status == StatusActive && m.Role == RoleCreator
}

func (m Membership) IsActiveManager() bool {
	return m.Status == StatusActive && (m.Role == RoleCreator || m.Role == RoleAdmin)
}

// CanWalk reports whether the membership lets its user create and view walks.
func (m Membership) CanWalk() bool {
	return m.Status == StatusActive && (m.Role == RoleMember || m.Role == RoleCreator)
}

type CreateGroupInput struct {
	Name        string
	Description string
}

type UpdateGroupInput struct {
	Name        *string
	Description *string
}

type ListFilter struct {
	Limit  int
	Offset int
}
