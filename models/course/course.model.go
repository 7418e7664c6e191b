package course

import "gorm.io/gorm"

// Course represents a sellable course in the catalog. Courses are never
// hard-deleted; unpublishing or soft-deleting hides them.
type Course struct {
	gorm.Model
	Slug         string  `json:"slug" gorm:"uniqueIndex;not null"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" gorm:"default:0"`
	Level        string  `json:"level" gorm:"default:'Primary School'"` // Primary School, Middle School, High School
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}
