package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"worldone/middleware"
	"worldone/validators"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// idParam parses a positive integer route parameter into Locals under key
func idParam(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(key, id)
		return c.Next()
	}
}

// List validator middleware for paginated listings
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page <= 0 {
			errors["page"] = "Page must be a positive number!"
		}
		if reqData.Limit != nil && (*reqData.Limit <= 0 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseSlug validates the :slug route parameter
func CourseSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" || !slugPattern.MatchString(slug) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course slug!", nil)
		}
		c.Locals("courseSlug", slug)
		return c.Next()
	}
}

// Route parameter validators
func CourseParam() fiber.Handler     { return idParam("courseId", "courseID") }
func ModuleParam() fiber.Handler     { return idParam("moduleId", "moduleID") }
func LessonParam() fiber.Handler     { return idParam("lessonId", "lessonID") }
func QuizParam() fiber.Handler       { return idParam("quizId", "quizID") }
func AssignmentParam() fiber.Handler { return idParam("assignmentId", "assignmentID") }
func StudentParam() fiber.Handler    { return idParam("studentId", "studentID") }

// CreateCourse validates admin course creation
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Slug         string  `json:"slug" validate:"required,min=3"`
			Title        string  `json:"title" validate:"required,min=3"`
			Description  string  `json:"description"`
			Price        float64 `json:"price" validate:"gte=0"`
			Level        string  `json:"level"`
			ThumbnailURL string  `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Title = strings.TrimSpace(reqData.Title)

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Slug != "" && !slugPattern.MatchString(reqData.Slug) {
			errors["slug"] = "Slug may only contain lowercase letters, digits and hyphens!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates partial course edits
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Slug         *string  `json:"slug" validate:"omitempty,min=3"`
			Title        *string  `json:"title" validate:"omitempty,min=3"`
			Description  *string  `json:"description"`
			Price        *float64 `json:"price" validate:"omitempty,gte=0"`
			Level        *string  `json:"level"`
			ThumbnailURL *string  `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Slug != nil && !slugPattern.MatchString(*reqData.Slug) {
			errors["slug"] = "Slug may only contain lowercase letters, digits and hyphens!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateCourse", reqData)
		return c.Next()
	}
}

// CreateModule validates module creation
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates partial module edits
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title" validate:"omitempty,min=2"`
			Description *string `json:"description"`
			OrderIndex  *int    `json:"order" validate:"omitempty,gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateModule", reqData)
		return c.Next()
	}
}

// CreateLesson validates lesson creation
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string `json:"title" validate:"required,min=2"`
			LessonType    string `json:"lesson_type" validate:"required,oneof=video pdf quiz assignment text"`
			Content       string `json:"content"`
			VideoURL      string `json:"video_url"`
			ResourceURL   string `json:"resource_url"`
			Duration      int    `json:"duration" validate:"gte=0"`
			OrderIndex    int    `json:"order" validate:"gte=0"`
			IsFreePreview bool   `json:"is_free_preview"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates partial lesson edits
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         *string `json:"title" validate:"omitempty,min=2"`
			LessonType    *string `json:"lesson_type" validate:"omitempty,oneof=video pdf quiz assignment text"`
			Content       *string `json:"content"`
			VideoURL      *string `json:"video_url"`
			ResourceURL   *string `json:"resource_url"`
			Duration      *int    `json:"duration" validate:"omitempty,gte=0"`
			OrderIndex    *int    `json:"order" validate:"omitempty,gte=0"`
			IsFreePreview *bool   `json:"is_free_preview"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateLesson", reqData)
		return c.Next()
	}
}
