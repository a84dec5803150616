package models

import (
	"gorm.io/gorm"
)

// CourseSyllabus is a per-course syllabus document for a semester.
type CourseSyllabus struct {
	gorm.Model
	CourseCode   string `gorm:"not null;index" json:"courseCode"`
	CourseName   string `gorm:"not null" json:"courseName"`
	Department   string `gorm:"index" json:"department"`
	Semester     int    `gorm:"index" json:"semester"`
	AcademicYear string `gorm:"index" json:"academicYear"`
	Description  string `gorm:"type:text" json:"description"`
	FileURL      string `json:"fileUrl"`
	FileName     string `json:"fileName"`
	UploadedBy   uint   `gorm:"not null" json:"uploadedBy"`
	IsDeleted    bool   `gorm:"default:false" json:"isDeleted"`
}
