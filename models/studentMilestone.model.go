package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentMilestone status values
const (
	ProgressNotStarted = "not-started"
	ProgressInProgress = "in-progress"
	ProgressSubmitted  = "submitted"
	ProgressCompleted  = "completed"
	ProgressFailed     = "failed"
)

// Submission is one submission entry, stored in the Submissions JSON column.
type Submission struct {
	ID          string    `json:"id"`
	Files       []string  `json:"files,omitempty"` // stored file URLs
	Text        string    `json:"text,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// GradedAnswer is one auto-graded quiz answer, stored in the Answers JSON column.
type GradedAnswer struct {
	QuestionID    string  `json:"questionId"`
	GivenAnswer   string  `json:"givenAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
	AwardedPoints float64 `json:"awardedPoints"`
	NeedsReview   bool    `json:"needsReview"` // free-text types are never auto-scored
}

// StudentMilestone is the per-student progress record against one milestone.
// Exactly one row exists per (student, milestone) pair.
type StudentMilestone struct {
	gorm.Model
	StudentID   uint   `gorm:"not null;index:idx_student_milestone,unique" json:"studentId"`
	MilestoneID uint   `gorm:"not null;index:idx_student_milestone,unique" json:"milestoneId"`
	Status      string `gorm:"default:'not-started'" json:"status"`

	Submissions datatypes.JSON `json:"submissions,omitempty"` // []Submission
	Answers     datatypes.JSON `json:"answers,omitempty"`     // []GradedAnswer

	// Advisory auto-graded result for objective questions; a human always
	// confirms before the record moves to completed.
	AutoGradedScore      *float64 `json:"autoGradedScore,omitempty"`
	AutoGradedPercentage *float64 `json:"autoGradedPercentage,omitempty"`

	Score      *float64 `json:"score,omitempty"`
	MaxScore   *float64 `json:"maxScore,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"` // always recomputed from score/maxScore
	Grade      string   `json:"grade,omitempty"`
	Feedback   string   `gorm:"type:text" json:"feedback,omitempty"`

	GradedBy *uint      `json:"gradedBy,omitempty"`
	GradedAt *time.Time `json:"gradedAt,omitempty"`

	QuizStartedAt *time.Time `json:"quizStartedAt,omitempty"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	IsDeleted     bool       `gorm:"default:false" json:"isDeleted"`
}

func (StudentMilestone) TableName() string {
	return "student_milestones"
}
