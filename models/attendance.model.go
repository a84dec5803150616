package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance status values
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// AttendanceRecord is one per-student per-date attendance mark. The unique
// index keeps a student from being marked twice for the same session date.
type AttendanceRecord struct {
	gorm.Model
	StudentID uint      `gorm:"not null;index:idx_attendance_day,unique" json:"studentId"`
	Date      time.Time `gorm:"not null;index:idx_attendance_day,unique" json:"date"`
	TeamID    *uint     `gorm:"index" json:"teamId"`
	Status    string    `gorm:"not null" json:"status"` // present, absent, late, excused
	Note      string    `json:"note,omitempty"`
	MarkedBy  uint      `gorm:"not null" json:"markedBy"`
	IsDeleted bool      `gorm:"default:false" json:"isDeleted"`
}
