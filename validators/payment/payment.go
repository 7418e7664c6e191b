package paymentValidator

import (
	"worldone/middleware"
	"worldone/validators"

	"github.com/gofiber/fiber/v2"
)

// MockCheckout validates the mock checkout cart
func MockCheckout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseIDs []uint `json:"course_ids" validate:"required,min=1"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.CourseIDs {
			if id == 0 {
				errors["course_ids"] = "Course ids must be positive!"
				break
			}
			if seen[id] {
				errors["course_ids"] = "Duplicate course ids are not allowed!"
				break
			}
			seen[id] = true
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMockCheckout", reqData)
		return c.Next()
	}
}
