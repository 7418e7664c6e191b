package userRoutes

import (
	courseControllers "worldone/controllers/course"
	userControllers "worldone/controllers/userControllers"
	"worldone/middleware"
	courseValidators "worldone/validators/course"
	userValidators "worldone/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Patch("/profile", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Get("/login/history", middleware.JWTMiddleware, userControllers.GetLoginHistory)
	userGroup.Patch("/status", userValidators.SetStatus(), middleware.JWTMiddleware, userControllers.AdminSetUserStatus)
	userGroup.Post("/create", userValidators.CreateUser(), middleware.JWTMiddleware, userControllers.AdminCreateUser)

	// Parent dashboard
	parentGroup := app.Group("/parent", middleware.JWTMiddleware)
	parentGroup.Get("/children", courseControllers.GetChildren)
	parentGroup.Get("/students/:studentId/analytics", courseValidators.StudentParam(), courseControllers.GetStudentAnalytics)
}
