package controllers

import (
	"math"
	"time"

	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// flattenLessons returns the course's lessons in traversal order, i.e. the
// already-ordered modules' lessons concatenated
func flattenLessons(modules []ModuleWithLessons) []courseModels.Lesson {
	var flat []courseModels.Lesson
	for _, mod := range modules {
		flat = append(flat, mod.Lessons...)
	}
	return flat
}

// nextLessonID finds the lesson immediately after currentID in traversal
// order. Returns nil for the last lesson (no auto-advance target).
func nextLessonID(ordered []courseModels.Lesson, currentID uint) *uint {
	for i, lesson := range ordered {
		if lesson.ID == currentID && i+1 < len(ordered) {
			id := ordered[i+1].ID
			return &id
		}
	}
	return nil
}

// progressPercent computes the rounded aggregate percentage; a course with
// zero lessons yields 0 rather than a division error
func progressPercent(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// upsertLessonProgress writes the completion state keyed on
// (user_id, lesson_id). Upsert, not read-then-write, so concurrent toggles
// from several tabs collapse onto one row.
func upsertLessonProgress(userID, lessonID, courseID uint, completed bool) error {
	row := courseModels.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    courseID,
		IsCompleted: completed,
	}
	return database.Database.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed": completed,
			"updated_at":   time.Now(),
		}),
	}).Create(&row).Error
}

// updateEnrollmentProgress refreshes the denormalized progress snapshot on
// the enrollment row after a completion change
func updateEnrollmentProgress(userID, courseID uint) {
	var totalLessons int64
	var completedLessons int64

	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons)
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND is_completed = ?", userID, courseID, true).
		Count(&completedLessons)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)
	enrollment.Progress = float64(progressPercent(completedLessons, totalLessons))

	if enrollment.Progress >= 100 && totalLessons > 0 {
		enrollment.Status = "COMPLETED"
		now := time.Now()
		enrollment.CompletedAt = &now
	} else if enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
		enrollment.CompletedAt = nil
	} else {
		enrollment.Status = "ENROLLED"
		enrollment.CompletedAt = nil
	}

	database.Database.Db.Save(&enrollment)
}

// ToggleLessonProgress flips the caller's completion state for a lesson and
// returns the new state plus the auto-advance target when newly completed.
func ToggleLessonProgress(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !user.IsStaff() && !isEnrolled(user.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Absent row counts as not completed
	newState := true
	var existing courseModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&existing).Error; err == nil {
		newState = !existing.IsCompleted
	}

	if err := upsertLessonProgress(user.ID, lesson.ID, course.ID, newState); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	updateEnrollmentProgress(user.ID, course.ID)

	// Auto-advance only on the transition to completed
	var next *uint
	if newState {
		modules, err := loadCurriculum(course.ID)
		if err == nil {
			next = nextLessonID(flattenLessons(modules), lesson.ID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"is_completed":   newState,
		"next_lesson_id": next,
	})
}

// UpdateLessonPosition stores the video resume point for a lesson
func UpdateLessonPosition(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	reqData := new(struct {
		PositionSeconds int `json:"position_seconds"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.PositionSeconds < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	row := courseModels.LessonProgress{
		UserID:              user.ID,
		LessonID:            lesson.ID,
		CourseID:            uint(courseID),
		LastPositionSeconds: reqData.PositionSeconds,
	}
	err := database.Database.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_position_seconds": reqData.PositionSeconds,
			"updated_at":            time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save position!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Position saved.", nil)
}

// GetUserProgress returns per-module and aggregate progress for a course
func GetUserProgress(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		if !user.IsStaff() {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
	}

	modules, err := loadCurriculum(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch curriculum!", nil)
	}

	var completedRows []courseModels.LessonProgress
	database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_completed = ?", user.ID, courseID, true).
		Find(&completedRows)

	completedSet := make(map[uint]bool, len(completedRows))
	completedIDs := make([]uint, 0, len(completedRows))
	for _, row := range completedRows {
		completedSet[row.LessonID] = true
		completedIDs = append(completedIDs, row.LessonID)
	}

	type ModuleProgress struct {
		ModuleID         uint   `json:"module_id"`
		ModuleTitle      string `json:"module_title"`
		TotalLessons     int    `json:"total_lessons"`
		CompletedLessons int    `json:"completed_lessons"`
		Progress         int    `json:"progress"`
	}

	totalLessons := 0
	totalCompleted := 0
	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		completed := 0
		for _, lesson := range mod.Lessons {
			if completedSet[lesson.ID] {
				completed++
			}
		}
		totalLessons += len(mod.Lessons)
		totalCompleted += completed
		moduleProgress[i] = ModuleProgress{
			ModuleID:         mod.ID,
			ModuleTitle:      mod.Title,
			TotalLessons:     len(mod.Lessons),
			CompletedLessons: completed,
			Progress:         progressPercent(int64(completed), int64(len(mod.Lessons))),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"completed_ids":   completedIDs,
		"module_progress": moduleProgress,
		"progress":        progressPercent(int64(totalCompleted), int64(totalLessons)),
	})
}
