package models

import (
	"gorm.io/gorm"
)

// Resource is an uploaded study/reference file distributed to students.
type Resource struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `json:"category"` // notes, slides, reference, other
	FileURL     string `gorm:"not null" json:"fileUrl"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	MimeType    string `json:"mimeType"`
	Department  string `gorm:"index" json:"department"`
	CohortYear  int    `gorm:"index" json:"cohortYear"`
	UploadedBy  uint   `gorm:"not null" json:"uploadedBy"`
	Downloads   int    `gorm:"default:0" json:"downloads"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`
}
