package controllers

import (
	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetChildren lists the student accounts linked to the calling parent
func GetChildren(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if user.Role != models.RoleParent && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only parent accounts can view linked students!", nil)
	}

	var children []models.User
	if err := database.Database.Db.
		Where("parent_id = ? AND is_deleted = ?", user.ID, false).
		Find(&children).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	for i := range children {
		children[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", children)
}

// canViewStudent gates the analytics view: the student themselves, their
// linked parent, and staff
func canViewStudent(viewer *models.User, student *models.User) bool {
	if viewer.ID == student.ID || viewer.IsStaff() {
		return true
	}
	return viewer.Role == models.RoleParent && student.ParentID != nil && *student.ParentID == viewer.ID
}

// GetStudentAnalytics reports per-course progress and quiz performance for
// one student
func GetStudentAnalytics(c *fiber.Ctx) error {
	viewer := currentUser(c.Locals("userId"))
	if viewer == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if !canViewStudent(viewer, &student) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to view this student!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Preload("Course").
		Where("user_id = ?", student.ID).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Best percentage per quiz, averaged across all quizzes attempted
	var attempts []courseModels.QuizAttempt
	database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", student.ID, false).
		Order("completed_at asc").
		Find(&attempts)

	bestByQuiz := make(map[uint]float64)
	for i := range attempts {
		pct := attempts[i].Percentage()
		if best, ok := bestByQuiz[attempts[i].QuizID]; !ok || pct >= best {
			bestByQuiz[attempts[i].QuizID] = pct
		}
	}

	avgQuizScore := 0.0
	if len(bestByQuiz) > 0 {
		sum := 0.0
		for _, pct := range bestByQuiz {
			sum += pct
		}
		avgQuizScore = sum / float64(len(bestByQuiz))
	}

	var submissionCount int64
	database.Database.Db.Model(&courseModels.AssignmentSubmission{}).
		Where("user_id = ?", student.ID).
		Count(&submissionCount)

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"student":           student,
		"enrollments":       enrollments,
		"quizzes_taken":     len(bestByQuiz),
		"quiz_attempts":     len(attempts),
		"avg_quiz_score":    avgQuizScore,
		"submissions_count": submissionCount,
	})
}
