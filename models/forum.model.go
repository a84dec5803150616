package models

import (
	"gorm.io/gorm"
)

// ForumPost is a top-level discussion post. Content passes the moderation
// gate before the row is created.
type ForumPost struct {
	gorm.Model
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Category   string `gorm:"index" json:"category"` // general, academic, placement, events
	AuthorID   uint   `gorm:"not null;index" json:"authorId"`
	IsPinned   bool   `gorm:"default:false" json:"isPinned"`
	IsLocked   bool   `gorm:"default:false" json:"isLocked"`
	ReplyCount int    `gorm:"default:0" json:"replyCount"`
	IsDeleted  bool   `gorm:"default:false" json:"isDeleted"`

	Replies []ForumReply `gorm:"foreignKey:PostID" json:"replies,omitempty"`
}

type ForumReply struct {
	gorm.Model
	PostID    uint   `gorm:"not null;index" json:"postId"`
	AuthorID  uint   `gorm:"not null;index" json:"authorId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`
}
