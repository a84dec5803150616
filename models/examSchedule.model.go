package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamSchedule status values
const (
	ScheduleStatusDraft     = "draft"
	ScheduleStatusActive    = "active"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

// Assignment modes
const (
	AssignmentModeRandom = "random"
	AssignmentModeManual = "manual"
)

// Slot status values
const (
	SlotStatusScheduled   = "scheduled"
	SlotStatusCompleted   = "completed"
	SlotStatusCancelled   = "cancelled"
	SlotStatusRescheduled = "rescheduled"
)

// ExamSchedule is an administrative exam/presentation window. Slots either
// hang directly off the schedule (legacy global distribution) or off a
// per-mentor MentorSchedule (self-service model). Summary counters are
// recomputed from the live slot list on every save, never hand-maintained.
type ExamSchedule struct {
	gorm.Model
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	ExamType        string    `json:"examType"` // viva, presentation, review
	StartDate       time.Time `gorm:"not null" json:"startDate"`
	EndDate         time.Time `gorm:"not null" json:"endDate"`
	DefaultDuration int       `gorm:"default:30" json:"defaultDuration"` // minutes
	Status          string    `gorm:"default:'draft'" json:"status"`
	AssignmentMode  string    `gorm:"default:'random'" json:"assignmentMode"` // random, manual

	AllowMentorReschedule bool `gorm:"default:true" json:"allowMentorReschedule"`
	RequireConfirmation   bool `gorm:"default:false" json:"requireConfirmation"`

	TotalSlots     int `gorm:"default:0" json:"totalSlots"`
	ScheduledSlots int `gorm:"default:0" json:"scheduledSlots"`
	CompletedSlots int `gorm:"default:0" json:"completedSlots"`
	PendingSlots   int `gorm:"default:0" json:"pendingSlots"`

	CreatedBy uint `gorm:"not null" json:"createdBy"`
	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	Slots           []ExamSlot       `gorm:"foreignKey:ScheduleID" json:"slots,omitempty"`
	MentorSchedules []MentorSchedule `gorm:"foreignKey:ScheduleID" json:"mentorSchedules,omitempty"`
}

// MentorSchedule is one mentor's declared capacity within an exam schedule:
// team count, per-team duration, buffer and a single day/time window.
type MentorSchedule struct {
	gorm.Model
	ScheduleID   uint      `gorm:"not null;index" json:"scheduleId"`
	MentorID     uint      `gorm:"not null;index" json:"mentorId"`
	TotalTeams   int       `gorm:"default:0" json:"totalTeams"`
	TeamDuration int       `gorm:"default:30" json:"teamDuration"` // minutes per team
	BufferTime   int       `gorm:"default:10" json:"bufferTime"`   // minutes between teams
	ExamDate     time.Time `json:"examDate"`
	StartTime    string    `gorm:"size:5" json:"startTime"` // "09:00"
	EndTime      string    `gorm:"size:5" json:"endTime"`   // "17:00"
	Venue        string    `json:"venue"`
	MeetingLink  string    `json:"meetingLink"`
	IsScheduled  bool      `gorm:"default:false" json:"isScheduled"` // blocks re-distribution until cleared
	IsDeleted    bool      `gorm:"default:false" json:"isDeleted"`

	Slots []ExamSlot `gorm:"foreignKey:MentorScheduleID" json:"slots,omitempty"`
}

// ExamSlot is one scheduled (mentor, team, time) triple. TeamID stays nil
// until a team is assigned.
type ExamSlot struct {
	gorm.Model
	ScheduleID       uint  `gorm:"not null;index" json:"scheduleId"`
	MentorScheduleID *uint `gorm:"index" json:"mentorScheduleId,omitempty"` // nil for legacy flat slots
	MentorID         uint  `gorm:"not null;index" json:"mentorId"`
	TeamID           *uint `gorm:"index" json:"teamId"`

	ScheduledDate time.Time `gorm:"not null" json:"scheduledDate"`
	StartTime     string    `gorm:"size:5" json:"startTime"` // "09:40"
	Duration      int       `gorm:"default:30" json:"duration"`
	Venue         string    `json:"venue"`
	MeetingLink   string    `json:"meetingLink"`

	Status   string   `gorm:"default:'scheduled'" json:"status"`
	Score    *float64 `json:"score,omitempty"`
	Feedback string   `gorm:"type:text" json:"feedback,omitempty"`

	Confirmation datatypes.JSON `json:"confirmation,omitempty"` // SlotConfirmation
	IsDeleted    bool           `gorm:"default:false" json:"isDeleted"`
}

// SlotConfirmation is the optional confirmation metadata on a slot.
type SlotConfirmation struct {
	ConfirmedBy uint      `json:"confirmedBy"`
	ConfirmedAt time.Time `json:"confirmedAt"`
	Note        string    `json:"note,omitempty"`
}

func (ExamSchedule) TableName() string {
	return "exam_schedules"
}
