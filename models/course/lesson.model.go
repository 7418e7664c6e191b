package course

import "gorm.io/gorm"

// Lesson types
const (
	LessonVideo      = "video"
	LessonPDF        = "pdf"
	LessonQuiz       = "quiz"
	LessonAssignment = "assignment"
	LessonText       = "text"
)

// Lesson belongs to exactly one module. The content fields used depend on
// lesson_type: video_url for videos, resource_url for PDFs, content for text.
// Quiz and assignment lessons reference their definitions via lesson_id.
type Lesson struct {
	gorm.Model
	ModuleID      uint   `json:"module_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Title         string `json:"title"`
	LessonType    string `json:"lesson_type" gorm:"default:'text'"` // video, pdf, quiz, assignment, text
	Content       string `json:"content" gorm:"type:text"`
	VideoURL      string `json:"video_url"`
	ResourceURL   string `json:"resource_url"`
	Duration      int    `json:"duration" gorm:"default:0"` // minutes
	OrderIndex    int    `json:"order" gorm:"default:0"`
	IsFreePreview bool   `json:"is_free_preview" gorm:"default:false"`
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}
