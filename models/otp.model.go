package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP is a keyed, time-boxed one-time password record. Expired or exhausted
// rows are evicted by the cron sweep in utils/scheduler.go.
type OTP struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Email       string    `gorm:"size:100;index" json:"email,omitempty"`
	Code        string    `gorm:"size:6;not null" json:"-"`
	Purpose     string    `gorm:"size:50" json:"purpose"` // verify-email, reset-password
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Attempts    int       `gorm:"default:0" json:"attempts"`
	MaxAttempts int       `gorm:"default:5" json:"max_attempts"`
	IsUsed      bool      `gorm:"default:false" json:"is_used"`
	IsDeleted   bool      `gorm:"default:false"`
}
