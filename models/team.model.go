package models

import (
	"time"

	"gorm.io/gorm"
)

// Team status values
const (
	TeamStatusForming   = "forming"
	TeamStatusActive    = "active"
	TeamStatusDisbanded = "disbanded"
)

type Team struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ProjectName string `json:"projectName"`
	CohortYear  int    `gorm:"index" json:"cohortYear"`
	LeaderID    uint   `gorm:"not null" json:"leaderId"`
	MentorID    *uint  `gorm:"index" json:"mentorId"`
	MaxMembers  int    `gorm:"default:5" json:"maxMembers"`
	Status      string `gorm:"default:'forming'" json:"status"` // forming, active, disbanded
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

type TeamMember struct {
	gorm.Model
	TeamID     uint      `gorm:"not null;index" json:"teamId"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	RoleInTeam string    `gorm:"default:'member'" json:"roleInTeam"` // leader, member
	JoinedAt   time.Time `json:"joinedAt"`
	IsDeleted  bool      `gorm:"default:false" json:"isDeleted"`
}

func (Team) TableName() string {
	return "teams"
}
