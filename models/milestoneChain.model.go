package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chain status values
const (
	ChainStatusEditing   = "editing"
	ChainStatusPublished = "published"
	ChainStatusArchived  = "archived"
)

// ChainEditor is one entry in the chain's collaboration list,
// stored as a JSON array on the chain row.
type ChainEditor struct {
	UserID       uint      `json:"userId"`
	LastEditedAt time.Time `json:"lastEditedAt"`
}

// MilestoneChain is a named, year-scoped container of ordered milestones
// with a shared publish lifecycle.
type MilestoneChain struct {
	gorm.Model
	Name                string         `gorm:"not null" json:"name"`
	Description         string         `gorm:"type:text" json:"description"`
	AcademicYear        string         `gorm:"not null;index" json:"academicYear"` // e.g. "2025-26"
	CohortYear          int            `gorm:"index" json:"cohortYear"`
	StartDate           time.Time      `json:"startDate"`
	EndDate             time.Time      `json:"endDate"`
	Status              string         `gorm:"default:'editing'" json:"status"` // editing, published, archived
	CreatedBy           uint           `gorm:"not null" json:"createdBy"`
	PublishedBy         *uint          `json:"publishedBy"`
	PublishedAt         *time.Time     `json:"publishedAt"`
	Editors             datatypes.JSON `json:"editors"` // []ChainEditor
	TotalMilestones     int            `gorm:"default:0" json:"totalMilestones"`
	PublishedMilestones int            `gorm:"default:0" json:"publishedMilestones"`
	IsDeleted           bool           `gorm:"default:false" json:"isDeleted"`

	Milestones []Milestone `gorm:"foreignKey:ChainID" json:"milestones,omitempty"`
}

func (MilestoneChain) TableName() string {
	return "milestone_chains"
}
