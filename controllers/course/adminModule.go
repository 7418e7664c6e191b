package controllers

import (
	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateModule adds a curriculum module to a course
func CreateModule(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCreateModule").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule edits a module's title, description or position
func UpdateModule(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedUpdateModule").(*struct {
		Title       *string `json:"title" validate:"omitempty,min=2"`
		Description *string `json:"description"`
		OrderIndex  *int    `json:"order" validate:"omitempty,gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module and its lessons
func DeleteModule(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true
	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("module_id = ?", module.ID).
		Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// CreateLesson adds a lesson to a module
func CreateLesson(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedCreateLesson").(*struct {
		Title         string `json:"title" validate:"required,min=2"`
		LessonType    string `json:"lesson_type" validate:"required,oneof=video pdf quiz assignment text"`
		Content       string `json:"content"`
		VideoURL      string `json:"video_url"`
		ResourceURL   string `json:"resource_url"`
		Duration      int    `json:"duration" validate:"gte=0"`
		OrderIndex    int    `json:"order" validate:"gte=0"`
		IsFreePreview bool   `json:"is_free_preview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:      module.ID,
		CourseID:      module.CourseID,
		Title:         reqData.Title,
		LessonType:    reqData.LessonType,
		Content:       reqData.Content,
		VideoURL:      reqData.VideoURL,
		ResourceURL:   reqData.ResourceURL,
		Duration:      reqData.Duration,
		OrderIndex:    reqData.OrderIndex,
		IsFreePreview: reqData.IsFreePreview,
	}
	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits lesson fields
func UpdateLesson(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedUpdateLesson").(*struct {
		Title         *string `json:"title" validate:"omitempty,min=2"`
		LessonType    *string `json:"lesson_type" validate:"omitempty,oneof=video pdf quiz assignment text"`
		Content       *string `json:"content"`
		VideoURL      *string `json:"video_url"`
		ResourceURL   *string `json:"resource_url"`
		Duration      *int    `json:"duration" validate:"omitempty,gte=0"`
		OrderIndex    *int    `json:"order" validate:"omitempty,gte=0"`
		IsFreePreview *bool   `json:"is_free_preview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.LessonType != nil {
		lesson.LessonType = *reqData.LessonType
	}
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.ResourceURL != nil {
		lesson.ResourceURL = *reqData.ResourceURL
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsFreePreview != nil {
		lesson.IsFreePreview = *reqData.IsFreePreview
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson
func DeleteLesson(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
