package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment is the durable entitlement to a course's non-preview content,
// created at checkout completion. Unique per (user, course). The progress
// fields are a denormalized snapshot maintained on completion toggles and
// reconciled nightly.
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID         uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress         float64    `json:"progress" gorm:"default:0"`        // 0-100
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	Course           Course     `json:"course" gorm:"foreignKey:CourseID"`
}
