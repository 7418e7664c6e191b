package controllers

import (
	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// Admin views expose correctness flags that the learner-facing serialization
// hides
type adminOptionView struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order"`
}

type adminQuestionView struct {
	ID           uint              `json:"id"`
	QuestionText string            `json:"question_text"`
	QuestionType string            `json:"question_type"`
	Points       int               `json:"points"`
	OrderIndex   int               `json:"order"`
	Options      []adminOptionView `json:"options"`
}

// OptionPayload and QuestionPayload are the builder request shapes. They are
// shared with the validators, which enforce that every question carries at
// least two options with exactly one marked correct.
type OptionPayload struct {
	OptionText string `json:"option_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionPayload struct {
	QuestionText string          `json:"question_text" validate:"required,min=2"`
	Points       int             `json:"points" validate:"gte=0"`
	OrderIndex   int             `json:"order" validate:"gte=0"`
	Options      []OptionPayload `json:"options" validate:"required,min=2,dive"`
}

type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"required,min=2"`
	Description string            `json:"description"`
	Questions   []QuestionPayload `json:"questions" validate:"dive"`
}

func insertQuestion(quizID uint, payload QuestionPayload) (*courseModels.QuizQuestion, error) {
	question := courseModels.QuizQuestion{
		QuizID:       quizID,
		QuestionText: payload.QuestionText,
		QuestionType: "single_choice",
		Points:       payload.Points,
		OrderIndex:   payload.OrderIndex,
	}
	if question.Points == 0 {
		question.Points = 1
	}
	if err := database.Database.Db.Create(&question).Error; err != nil {
		return nil, err
	}

	for i, opt := range payload.Options {
		option := courseModels.QuizOption{
			QuestionID: question.ID,
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
		if err := database.Database.Db.Create(&option).Error; err != nil {
			return nil, err
		}
	}
	return &question, nil
}

// CreateQuiz attaches a quiz, with its questions and options, to a quiz-type
// lesson. One quiz per lesson.
func CreateQuiz(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedCreateQuiz").(*CreateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if lesson.LessonType != courseModels.LessonQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quizzes can only be attached to quiz lessons!", nil)
	}

	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&courseModels.Quiz{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This lesson already has a quiz!", nil)
	}

	quiz := courseModels.Quiz{
		LessonID:    lesson.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}
	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for _, q := range reqData.Questions {
		if _, err := insertQuestion(quiz.ID, q); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz question!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AddQuizQuestion appends a question to an existing quiz
func AddQuizQuestion(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedAddQuestion").(*QuestionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	question, err := insertQuestion(quiz.ID, *reqData)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// GetAdminQuiz returns the full quiz including answer keys, for the builder UI
func GetAdminQuiz(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	questions, options, err := loadQuizQuestions(quiz.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	views := make([]adminQuestionView, len(questions))
	for i, q := range questions {
		views[i] = adminQuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			OrderIndex:   q.OrderIndex,
			Options:      []adminOptionView{},
		}
		for _, opt := range options {
			if opt.QuestionID == q.ID {
				views[i].Options = append(views[i].Options, adminOptionView{
					ID:         opt.ID,
					OptionText: opt.OptionText,
					IsCorrect:  opt.IsCorrect,
					OrderIndex: opt.OrderIndex,
				})
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": views,
	})
}

// CreateAssignment attaches an assignment to an assignment-type lesson
func CreateAssignment(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedCreateAssignment").(*struct {
		Title        string `json:"title" validate:"required,min=2"`
		Instructions string `json:"instructions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if lesson.LessonType != courseModels.LessonAssignment {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignments can only be attached to assignment lessons!", nil)
	}

	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&courseModels.Assignment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This lesson already has an assignment!", nil)
	}

	assignment := courseModels.Assignment{
		LessonID:     lesson.ID,
		Title:        reqData.Title,
		Instructions: reqData.Instructions,
	}
	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// GetAssignmentSubmissions lists learner submissions for grading review
func GetAssignmentSubmissions(c *fiber.Ctx) error {
	if _, err := requireStaff(c); err != nil {
		return err
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submissions []courseModels.AssignmentSubmission
	if err := database.Database.Db.
		Where("assignment_id = ?", assignment.ID).
		Order("submitted_at desc").
		Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"assignment":  assignment,
		"submissions": submissions,
	})
}
