package models

import (
	"gorm.io/gorm"
)

// Message is one message posted into a community room. The realtime hub
// broadcasts it to the room after the row is stored.
type Message struct {
	gorm.Model
	CommunityID uint   `gorm:"not null;index" json:"communityId"`
	SenderID    uint   `gorm:"not null;index" json:"senderId"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Attachment  string `json:"attachment,omitempty"` // stored file URL
	IsEdited    bool   `gorm:"default:false" json:"isEdited"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`
}
