package course

import "gorm.io/gorm"

// LessonProgress is the singleton-per-key completion row for a user+lesson.
// Writes go through an upsert on (user_id, lesson_id) so concurrent toggles
// from multiple tabs cannot create duplicate rows.
type LessonProgress struct {
	gorm.Model
	UserID              uint `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID            uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	CourseID            uint `json:"course_id" gorm:"index;not null"`
	IsCompleted         bool `json:"is_completed" gorm:"default:false"`
	LastPositionSeconds int  `json:"last_position_seconds" gorm:"default:0"` // video resume point
}
