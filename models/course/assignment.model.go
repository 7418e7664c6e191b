package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is the optional configuration of an assignment-type lesson.
// A lesson without an Assignment row has "no assignment configured", which
// callers must distinguish from "configured but unsubmitted".
type Assignment struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	Instructions string `json:"instructions" gorm:"type:text"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

// AssignmentSubmission is append-only; there is no automatic grading,
// submissions wait for manual review.
type AssignmentSubmission struct {
	gorm.Model
	AssignmentID uint      `json:"assignment_id" gorm:"index;not null"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	FileURL      string    `json:"file_url"`
	Comments     string    `json:"comments" gorm:"type:text"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
