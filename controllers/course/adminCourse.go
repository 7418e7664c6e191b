package controllers

import (
	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// requireStaff resolves the caller and rejects non-staff roles. Admin and
// instructor share the management surface.
func requireStaff(c *fiber.Ctx) (*models.User, error) {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if !user.IsStaff() {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage courses!", nil)
	}
	return user, nil
}

// CreateCourse creates an unpublished course draft
func CreateCourse(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedCreateCourse").(*struct {
		Slug         string  `json:"slug" validate:"required,min=3"`
		Title        string  `json:"title" validate:"required,min=3"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" validate:"gte=0"`
		Level        string  `json:"level"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Where("slug = ?", reqData.Slug).First(&courseModels.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
	}

	course := courseModels.Course{
		Slug:         reqData.Slug,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Level:        reqData.Level,
		ThumbnailURL: reqData.ThumbnailURL,
		IsPublished:  false,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits course fields; slug changes re-check uniqueness
func UpdateCourse(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedUpdateCourse").(*struct {
		Slug         *string  `json:"slug" validate:"omitempty,min=3"`
		Title        *string  `json:"title" validate:"omitempty,min=3"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price" validate:"omitempty,gte=0"`
		Level        *string  `json:"level"`
		ThumbnailURL *string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Slug != nil && *reqData.Slug != course.Slug {
		if err := database.Database.Db.Where("slug = ?", *reqData.Slug).First(&courseModels.Course{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
		}
		course.Slug = *reqData.Slug
	}
	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// SetCoursePublished toggles the catalog visibility of a course
func SetCoursePublished(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	reqData := new(struct {
		IsPublished bool `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = reqData.IsPublished
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully!"
	if course.IsPublished {
		message = "Course published successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// DeleteCourse soft-deletes a course. Enrollments and progress rows are kept
// for reporting.
func DeleteCourse(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetAdminCourses lists all courses including drafts, for the management view
func GetAdminCourses(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
