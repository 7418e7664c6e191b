package course

import "gorm.io/gorm"

// Module represents a section within a course. Display order is
// (order_index asc, created_at asc).
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
