package paymentController

import (
	"fmt"
	"log"

	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"
	"worldone/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MockProcessPayment simulates a successful checkout: it records the payment
// with its line items and enrolls the buyer into every purchased course, all
// in one transaction. Re-buying an owned course is a no-op on the enrollment.
func MockProcessPayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMockCheckout").(*struct {
		CourseIDs []uint `json:"course_ids" validate:"required,min=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("id IN ? AND is_deleted = ? AND is_published = ?", reqData.CourseIDs, false, true).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	if len(courses) != len(reqData.CourseIDs) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more courses were not found!", nil)
	}

	total := 0.0
	for _, course := range courses {
		total += course.Price
	}

	payment := models.Payment{
		UserID:    user.ID,
		Reference: uuid.NewString(),
		Amount:    total,
		Status:    "SUCCESS",
		Gateway:   "MOCK",
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		for _, course := range courses {
			item := models.PaymentItem{
				PaymentID: payment.ID,
				CourseID:  course.ID,
				Price:     course.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			var totalLessons int64
			tx.Model(&courseModels.Lesson{}).
				Where("course_id = ? AND is_deleted = ?", course.ID, false).
				Count(&totalLessons)

			enrollment := courseModels.Enrollment{
				UserID:       user.ID,
				CourseID:     course.ID,
				Status:       "ENROLLED",
				TotalLessons: int(totalLessons),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
				DoNothing: true,
			}).Create(&enrollment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error processing mock payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}

	courseTitles := make([]string, len(courses))
	for i, course := range courses {
		courseTitles[i] = course.Title
	}
	utils.SendReceiptEmail(user.Email, user.FullName, payment.Reference, fmt.Sprintf("%.2f", payment.Amount), courseTitles)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment processed successfully!", fiber.Map{
		"payment": payment,
		"courses": courses,
	})
}

// GetUserEnrollments lists the caller's enrollments with course details
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 20
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ?", userID)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPaymentHistory lists the caller's payments with line items
func GetPaymentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	paymentIDs := make([]uint, len(payments))
	for i, p := range payments {
		paymentIDs[i] = p.ID
	}

	var items []models.PaymentItem
	if len(paymentIDs) > 0 {
		database.Database.Db.Where("payment_id IN ?", paymentIDs).Find(&items)
	}

	type PaymentWithItems struct {
		models.Payment
		Items []models.PaymentItem `json:"items"`
	}

	result := make([]PaymentWithItems, len(payments))
	for i, p := range payments {
		result[i] = PaymentWithItems{Payment: p, Items: []models.PaymentItem{}}
		for _, item := range items {
			if item.PaymentID == p.ID {
				result[i].Items = append(result[i].Items, item)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", result)
}
