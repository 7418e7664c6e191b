package controllers

import (
	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetAdminDashboard aggregates headline numbers for the admin home screen
func GetAdminDashboard(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	db := database.Database.Db

	var totalStudents int64
	db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Count(&totalStudents)

	var totalCourses int64
	db.Model(&courseModels.Course{}).
		Where("is_deleted = ?", false).
		Count(&totalCourses)

	var publishedCourses int64
	db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true).
		Count(&publishedCourses)

	var totalEnrollments int64
	db.Model(&courseModels.Enrollment{}).Count(&totalEnrollments)

	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	var enrollmentsThisWeek int64
	db.Model(&courseModels.Enrollment{}).
		Where("created_at >= ?", weekStart).
		Count(&enrollmentsThisWeek)

	var signupsThisMonth int64
	db.Model(&models.User{}).
		Where("created_at >= ? AND is_deleted = ?", monthStart, false).
		Count(&signupsThisMonth)

	var revenueThisMonth float64
	db.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ? AND is_deleted = ?", "SUCCESS", monthStart, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenueThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_students":        totalStudents,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"enrollments_this_week": enrollmentsThisWeek,
		"signups_this_month":    signupsThisMonth,
		"revenue_this_month":    revenueThisMonth,
	})
}

// GetCourseEnrollments lists the learners of one course with their progress
// snapshots, for the instructor roster view
func GetCourseEnrollments(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

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

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID)

	var total int64
	db.Count(&total)

	type EnrollmentRow struct {
		EnrollmentID     uint    `json:"enrollment_id"`
		UserID           uint    `json:"user_id"`
		FullName         string  `json:"full_name"`
		Email            string  `json:"email"`
		Status           string  `json:"status"`
		Progress         float64 `json:"progress"`
		CompletedLessons int     `json:"completed_lessons"`
		TotalLessons     int     `json:"total_lessons"`
	}

	var rows []EnrollmentRow
	if err := database.Database.Db.Model(&courseModels.Enrollment{}).
		Select("enrollments.id as enrollment_id, users.id as user_id, users.full_name, users.email, enrollments.status, enrollments.progress, enrollments.completed_lessons, enrollments.total_lessons").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.course_id = ?", course.ID).
		Order("enrollments.created_at desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", map[string]interface{}{
		"course":      course,
		"enrollments": rows,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
