package controllers

import (
	"fmt"

	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// Access denial reasons
const (
	ReasonAuthRequired = "authentication required"
	ReasonNotEnrolled  = "not enrolled"
)

// AccessDecision is the outcome of evaluating lesson access for a viewer.
// Redirect carries the frontend path the caller should navigate to on denial:
// the sign-in page (with a return path) for anonymous viewers, the course
// sales page for unenrolled ones.
type AccessDecision struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// CanAccessLesson evaluates the enrollment gate for a single lesson.
// Rules short-circuit in order: free preview, authentication, staff bypass,
// enrollment.
func CanAccessLesson(user *models.User, enrolled bool, lesson *courseModels.Lesson, courseSlug string) AccessDecision {
	if lesson.IsFreePreview {
		return AccessDecision{Allowed: true}
	}

	if user == nil {
		lessonURL := fmt.Sprintf("/courses/%s/learn?lesson=%d", courseSlug, lesson.ID)
		return AccessDecision{
			Reason:   ReasonAuthRequired,
			Redirect: "/login?next=" + lessonURL,
		}
	}

	if user.IsStaff() {
		return AccessDecision{Allowed: true}
	}

	if enrolled {
		return AccessDecision{Allowed: true}
	}

	return AccessDecision{
		Reason:   ReasonNotEnrolled,
		Redirect: "/courses/" + courseSlug,
	}
}

// GetLesson serves a single lesson for the course player, applying the
// enrollment gate. Anonymous requests are allowed through the optional JWT
// middleware so free-preview lessons stay reachable.
func GetLesson(c *fiber.Ctx) error {
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

	// Attach the viewer's completion state when signed in
	var progress *courseModels.LessonProgress
	if user != nil {
		var row courseModels.LessonProgress
		if err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&row).Error; err == nil {
			progress = &row
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":   lesson,
		"progress": progress,
	})
}
