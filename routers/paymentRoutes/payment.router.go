package paymentRoutes

import (
	paymentControllers "worldone/controllers/payment"
	"worldone/middleware"
	courseValidators "worldone/validators/course"
	paymentValidators "worldone/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments", middleware.JWTMiddleware)

	paymentGroup.Post("/mock-process", paymentValidators.MockCheckout(), paymentControllers.MockProcessPayment)
	paymentGroup.Get("/history", paymentControllers.GetPaymentHistory)

	app.Get("/user/enrollments", middleware.JWTMiddleware, courseValidators.List(), paymentControllers.GetUserEnrollments)
}
