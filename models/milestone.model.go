package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Milestone types
const (
	MilestoneTypeAssignment = "assignment"
	MilestoneTypeQuiz       = "quiz"
	MilestoneTypeExam       = "exam"
	MilestoneTypeProject    = "project"
	MilestoneTypeTask       = "task"
)

// Milestone status values
const (
	MilestoneStatusDraft     = "draft"
	MilestoneStatusPublished = "published"
)

// Question types
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
	QuestionTypeEssay          = "essay"
)

// Question is one embedded question of a quiz/exam milestone,
// stored in the milestone's Questions JSON column.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"` // multiple-choice, true-false, short-answer, essay
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Points        float64  `json:"points"`
}

// SubmissionRequirements describes what an assignment submission may contain.
type SubmissionRequirements struct {
	AllowedFileTypes []string `json:"allowedFileTypes,omitempty"`
	MaxFileSizeMB    int      `json:"maxFileSizeMb,omitempty"`
	MaxFiles         int      `json:"maxFiles,omitempty"`
	AllowText        bool     `json:"allowText"`
}

// Milestone is one assessable unit of work within a chain.
type Milestone struct {
	gorm.Model
	ChainID      uint           `gorm:"not null;index" json:"chainId"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Type         string         `gorm:"not null" json:"type"` // assignment, quiz, exam, project, task
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	OrderIndex   int            `gorm:"not null" json:"orderIndex"`    // unique within chain
	Status       string         `gorm:"default:'draft'" json:"status"` // draft, published
	Questions    datatypes.JSON `json:"questions,omitempty"`           // []Question, quiz/exam only
	Duration     int            `gorm:"default:0" json:"duration"`     // minutes, quiz/exam only
	PassingScore float64        `gorm:"default:0" json:"passingScore"`
	Requirements datatypes.JSON `json:"requirements,omitempty"` // SubmissionRequirements, assignment only
	CreatedBy    uint           `gorm:"not null" json:"createdBy"`
	IsDeleted    bool           `gorm:"default:false" json:"isDeleted"`
}

// IsTimed reports whether the milestone enforces a quiz clock.
func (m *Milestone) IsTimed() bool {
	return (m.Type == MilestoneTypeQuiz || m.Type == MilestoneTypeExam) && m.Duration > 0
}
