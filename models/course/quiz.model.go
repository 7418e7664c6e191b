package course

import (
	"time"

	"gorm.io/gorm"
)

// Quiz belongs to exactly one quiz-type lesson
type Quiz struct {
	gorm.Model
	LessonID    uint   `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// QuizQuestion is a single-select question worth Points
type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type" gorm:"default:'single_choice'"`
	Points       int    `json:"points" gorm:"default:1"`
	OrderIndex   int    `json:"order" gorm:"default:0"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

// QuizOption is one answer choice. IsCorrect is never serialized; grading
// happens server-side only, so correctness cannot leak before submission.
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"-" gorm:"default:false"`
	OrderIndex int    `json:"order" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// QuizAttempt is append-only; retakes are unlimited and the best percentage
// across attempts is the user's score for the quiz.
type QuizAttempt struct {
	gorm.Model
	QuizID      uint      `json:"quiz_id" gorm:"index;not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score"`
	CompletedAt time.Time `json:"completed_at"`
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}

// Percentage returns the attempt score as a percentage, 0 for an empty quiz
func (a *QuizAttempt) Percentage() float64 {
	if a.MaxScore == 0 {
		return 0
	}
	return 100 * float64(a.Score) / float64(a.MaxScore)
}
