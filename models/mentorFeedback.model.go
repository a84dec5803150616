package models

import (
	"gorm.io/gorm"
)

// MentorFeedback is periodic mentor feedback on an assigned team.
type MentorFeedback struct {
	gorm.Model
	MentorID  uint    `gorm:"not null;index" json:"mentorId"`
	TeamID    uint    `gorm:"not null;index" json:"teamId"`
	Week      int     `json:"week"`
	Rating    float64 `gorm:"default:0" json:"rating"` // 0-5
	Strengths string  `gorm:"type:text" json:"strengths"`
	Concerns  string  `gorm:"type:text" json:"concerns"`
	Remarks   string  `gorm:"type:text" json:"remarks"`
	IsDeleted bool    `gorm:"default:false" json:"isDeleted"`
}
