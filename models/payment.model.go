package models

import "gorm.io/gorm"

// Payment is a checkout record. Only the mock gateway is wired; a successful
// payment is what creates course enrollments.
type Payment struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index;not null"`
	Reference string  `json:"reference" gorm:"unique"`
	Amount    float64 `json:"amount" gorm:"default:0"`
	Status    string  `json:"status" gorm:"default:'PENDING'"` // PENDING, SUCCESS, FAILED
	Gateway   string  `json:"gateway" gorm:"default:'MOCK'"`
	IsDeleted bool    `json:"-" gorm:"default:false"`
}

// PaymentItem is one course line of a payment
type PaymentItem struct {
	gorm.Model
	PaymentID uint    `json:"payment_id" gorm:"index;not null"`
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	Price     float64 `json:"price"`
}
