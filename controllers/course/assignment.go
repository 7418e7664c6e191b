package controllers

import (
	"log"
	"time"

	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"
	"worldone/utils"

	"github.com/gofiber/fiber/v2"
)

// GetLessonAssignment serves the assignment attached to a lesson along with
// the caller's latest submission, if any
func GetLessonAssignment(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)
	lessonID := c.Locals("lessonID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, course.ID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	user := currentUser(c.Locals("userId"))
	enrolled := false
	if user != nil {
		enrolled = isEnrolled(user.ID, course.ID)
	}

	decision := CanAccessLesson(user, enrolled, &lesson, course.Slug)
	if !decision.Allowed {
		status := fiber.StatusForbidden
		if decision.Reason == ReasonAuthRequired {
			status = fiber.StatusUnauthorized
		}
		return middleware.JsonResponse(c, status, false, "You do not have access to this lesson!", decision)
	}

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No assignment configured for this lesson!", nil)
	}

	var latest *courseModels.AssignmentSubmission
	if user != nil {
		var row courseModels.AssignmentSubmission
		if err := database.Database.Db.
			Where("assignment_id = ? AND user_id = ?", assignment.ID, user.ID).
			Order("submitted_at desc").
			First(&row).Error; err == nil {
			latest = &row
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment fetched successfully!", fiber.Map{
		"assignment":        assignment,
		"latest_submission": latest,
	})
}

// SubmitAssignment accepts a multipart file upload for an assignment. The
// blob is stored first; the submission row is only written once the upload
// succeeded, so no row can point at a missing file.
func SubmitAssignment(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignment.LessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !user.IsStaff() && !isEnrolled(user.ID, lesson.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}

	fileURL, err := utils.UploadFile(file)
	if err != nil {
		log.Printf("Error uploading assignment file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to store the uploaded file!", nil)
	}

	submission := courseModels.AssignmentSubmission{
		AssignmentID: assignment.ID,
		UserID:       user.ID,
		FileURL:      fileURL,
		Comments:     c.FormValue("comments"),
		SubmittedAt:  time.Now(),
	}
	if err := database.Database.Db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}
