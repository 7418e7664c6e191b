package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles understood by the application
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
	RoleParent     = "parent"
)

// Account statuses. New accounts start inactive and are promoted to active
// once email verification is observed at login time.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBlocked  = "blocked"
)

type User struct {
	gorm.Model
	FullName        string     `json:"full_name" gorm:"default:''"`
	Username        string     `json:"username" gorm:"unique;not null"`
	Email           string     `json:"email" gorm:"unique;not null"`
	Password        string     `json:"-" gorm:"not null"`
	Role            string     `json:"role" gorm:"default:'student'"`    // student, instructor, admin, parent
	Status          string     `json:"status" gorm:"default:'inactive'"` // active, inactive, blocked
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	VerifyToken     string     `json:"-" gorm:"default:''"`
	VerifyExpiry    *time.Time `json:"-"`
	ParentID        *uint      `json:"parent_id" gorm:"index"` // set for student accounts linked to a parent
	AvatarURL       string     `json:"avatar_url" gorm:"default:''"`
	LastLogin       time.Time  `json:"last_login" gorm:"default:NULL"`
	IsDeleted       bool       `json:"-" gorm:"default:false"`
}

// IsStaff reports whether the user bypasses enrollment checks
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleInstructor
}
