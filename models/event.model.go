package models

import (
	"time"

	"gorm.io/gorm"
)

// Event status values
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventType   string    `json:"eventType"` // workshop, seminar, hackathon, cultural
	Venue       string    `json:"venue"`
	BannerImage string    `json:"bannerImage"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 means unlimited
	Status      string    `gorm:"default:'upcoming'" json:"status"`
	CreatedBy   uint      `gorm:"not null" json:"createdBy"`
	IsDeleted   bool      `gorm:"default:false" json:"isDeleted"`

	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

type EventRegistration struct {
	gorm.Model
	EventID      uint      `gorm:"not null;index" json:"eventId"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	RegisteredAt time.Time `json:"registeredAt"`
	Attended     bool      `gorm:"default:false" json:"attended"`
	IsDeleted    bool      `gorm:"default:false" json:"isDeleted"`
}
