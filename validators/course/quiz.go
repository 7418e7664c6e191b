package courseValidator

import (
	"worldone/controllers/course"
	"worldone/middleware"
	"worldone/validators"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz validates a quiz answer sheet
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuizID  uint          `json:"quiz_id" validate:"required"`
			Answers map[uint]uint `json:"answers" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Answers != nil && len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitQuiz", reqData)
		return c.Next()
	}
}

// checkQuestions enforces the single-select shape: at least two options per
// question with exactly one marked correct
func checkQuestions(questions []controllers.QuestionPayload, errors map[string]string) {
	for _, q := range questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			errors["questions"] = "Each question must have exactly one correct option!"
			return
		}
	}
}

// CreateQuiz validates the quiz builder payload
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.CreateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		checkQuestions(reqData.Questions, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateQuiz", reqData)
		return c.Next()
	}
}

// AddQuestion validates a single question appended to an existing quiz
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuestionPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		checkQuestions([]controllers.QuestionPayload{*reqData}, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddQuestion", reqData)
		return c.Next()
	}
}

// CreateAssignment validates assignment creation
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=2"`
			Instructions string `json:"instructions"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateAssignment", reqData)
		return c.Next()
	}
}
