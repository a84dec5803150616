package models

import (
	"time"

	"gorm.io/gorm"
)

// Community is a named messaging room with an explicit membership list.
type Community struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CoverImage  string `json:"coverImage"`
	IsPrivate   bool   `gorm:"default:false" json:"isPrivate"`
	CreatedBy   uint   `gorm:"not null" json:"createdBy"`
	MemberCount int    `gorm:"default:0" json:"memberCount"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`

	Members []CommunityMember `gorm:"foreignKey:CommunityID" json:"members,omitempty"`
}

type CommunityMember struct {
	gorm.Model
	CommunityID uint      `gorm:"not null;index" json:"communityId"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	RoleInRoom  string    `gorm:"default:'member'" json:"roleInRoom"` // owner, moderator, member
	JoinedAt    time.Time `json:"joinedAt"`
	IsDeleted   bool      `gorm:"default:false" json:"isDeleted"`
}

func (Community) TableName() string {
	return "communities"
}
