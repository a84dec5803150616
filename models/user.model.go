package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "student"
	RoleMentor     = "mentor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Approval status values
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''" json:"profileImage"`
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"unique;not null" json:"email"`
	Mobile              string     `gorm:"default:''" json:"mobile"`
	Role                string     `gorm:"default:'student'" json:"role"` // student, mentor, admin, super_admin
	Password            string     `gorm:"not null" json:"-"`
	RollNumber          string     `gorm:"index" json:"rollNumber"`
	Department          string     `json:"department"`
	CohortYear          int        `json:"cohortYear"`
	TeamID              *uint      `gorm:"index" json:"teamId"`
	ApprovalStatus      string     `gorm:"default:'pending'" json:"approvalStatus"` // pending, approved, rejected
	ApprovedBy          *uint      `json:"approvedBy"`
	ApprovedAt          *time.Time `json:"approvedAt"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	IsEmailVerified     bool       `gorm:"default:false" json:"isEmailVerified"`
	LastLogin           time.Time  `gorm:"default:NULL" json:"lastLogin"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"isBlocked"`
	BlockedUntil        *time.Time `json:"blockedUntil"`
	IsDeleted           bool       `gorm:"default:false" json:"isDeleted"`
}

// IsStaff reports whether the user holds an admin-tier role.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
