package controllers

import (
	"time"

	"worldone/config"
	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// QuestionWithOptions is a question plus its ordered answer choices. Options
// serialize through QuizOption, which never exposes correctness.
type QuestionWithOptions struct {
	courseModels.QuizQuestion
	Options []courseModels.QuizOption `json:"options"`
}

type gradeResult struct {
	Score      int
	MaxScore   int
	Percentage float64
}

// gradeQuiz scores a single-select answer sheet. Every question counts toward
// MaxScore whether or not it was answered; an answer only earns points when
// the chosen option belongs to that question and is marked correct.
func gradeQuiz(questions []courseModels.QuizQuestion, options []courseModels.QuizOption, answers map[uint]uint) gradeResult {
	correct := make(map[uint]map[uint]bool)
	for _, opt := range options {
		if opt.IsCorrect {
			if correct[opt.QuestionID] == nil {
				correct[opt.QuestionID] = make(map[uint]bool)
			}
			correct[opt.QuestionID][opt.ID] = true
		}
	}

	result := gradeResult{}
	for _, q := range questions {
		result.MaxScore += q.Points
		if optionID, ok := answers[q.ID]; ok && correct[q.ID][optionID] {
			result.Score += q.Points
		}
	}

	if result.MaxScore > 0 {
		result.Percentage = 100 * float64(result.Score) / float64(result.MaxScore)
	}
	return result
}

// bestAttempt picks the attempt with the highest percentage. Attempts must be
// ordered oldest first; ties resolve to the most recent attempt.
func bestAttempt(attempts []courseModels.QuizAttempt) *courseModels.QuizAttempt {
	var best *courseModels.QuizAttempt
	for i := range attempts {
		if best == nil || attempts[i].Percentage() >= best.Percentage() {
			best = &attempts[i]
		}
	}
	return best
}

func loadQuizQuestions(quizID uint) ([]courseModels.QuizQuestion, []courseModels.QuizOption, error) {
	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.
		Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Order("order_index asc, created_at asc").
		Find(&questions).Error; err != nil {
		return nil, nil, err
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	var options []courseModels.QuizOption
	if len(questionIDs) > 0 {
		if err := database.Database.Db.
			Where("question_id IN ? AND is_deleted = ?", questionIDs, false).
			Order("order_index asc, created_at asc").
			Find(&options).Error; err != nil {
			return nil, nil, err
		}
	}
	return questions, options, nil
}

// GetLessonQuiz serves the quiz attached to a lesson, behind the same
// enrollment gate as the lesson itself
func GetLessonQuiz(c *fiber.Ctx) error {
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

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz configured for this lesson!", nil)
	}

	questions, options, err := loadQuizQuestions(quiz.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithOptions{QuizQuestion: q, Options: []courseModels.QuizOption{}}
		for _, opt := range options {
			if opt.QuestionID == q.ID {
				result[i].Options = append(result[i].Options, opt)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// GetQuizAttempts returns the caller's attempt history for a quiz, newest
// first, plus the best attempt
func GetQuizAttempts(c *fiber.Ctx) error {
	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.
		Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quiz.ID, user.ID, false).
		Order("completed_at asc").
		Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	best := bestAttempt(attempts)

	// Newest first for display
	newest := make([]courseModels.QuizAttempt, len(attempts))
	for i := range attempts {
		newest[len(attempts)-1-i] = attempts[i]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":     newest,
		"best_attempt": best,
	})
}

// SubmitQuiz grades an answer sheet server-side and records the attempt. A
// passing score marks the quiz lesson completed.
func SubmitQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmitQuiz").(*struct {
		QuizID  uint          `json:"quiz_id" validate:"required"`
		Answers map[uint]uint `json:"answers" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user := currentUser(c.Locals("userId"))
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.QuizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.LessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !user.IsStaff() && !lesson.IsFreePreview && !isEnrolled(user.ID, lesson.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	questions, options, err := loadQuizQuestions(quiz.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This quiz has no questions yet!", nil)
	}

	for _, q := range questions {
		if _, answered := reqData.Answers[q.ID]; !answered {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "All questions must be answered!", nil)
		}
	}

	result := gradeQuiz(questions, options, reqData.Answers)

	attempt := courseModels.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      user.ID,
		Score:       result.Score,
		MaxScore:    result.MaxScore,
		CompletedAt: time.Now(),
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attempt!", nil)
	}

	passed := result.Percentage >= float64(config.AppConfig.QuizPassPercent)
	if passed {
		if err := upsertLessonProgress(user.ID, lesson.ID, lesson.CourseID, true); err == nil {
			updateEnrollmentProgress(user.ID, lesson.CourseID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"attempt":    attempt,
		"score":      result.Score,
		"max_score":  result.MaxScore,
		"percentage": result.Percentage,
		"passed":     passed,
	})
}
