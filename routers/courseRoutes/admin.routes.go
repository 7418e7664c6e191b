package courseRoutes

import (
	courseControllers "worldone/controllers/course"
	"worldone/middleware"
	courseValidators "worldone/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes registers the course management surface. Role checks
// happen in the controllers; the JWT gate here only establishes identity.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	adminGroup.Get("/dashboard", courseControllers.GetAdminDashboard)

	adminGroup.Get("/courses", courseValidators.List(), courseControllers.GetAdminCourses)
	adminGroup.Post("/courses", courseValidators.CreateCourse(), courseControllers.CreateCourse)
	adminGroup.Patch("/courses/:courseId", courseValidators.CourseParam(), courseValidators.UpdateCourse(), courseControllers.UpdateCourse)
	adminGroup.Patch("/courses/:courseId/publish", courseValidators.CourseParam(), courseControllers.SetCoursePublished)
	adminGroup.Delete("/courses/:courseId", courseValidators.CourseParam(), courseControllers.DeleteCourse)
	adminGroup.Get("/courses/:courseId/enrollments", courseValidators.CourseParam(), courseValidators.List(), courseControllers.GetCourseEnrollments)

	adminGroup.Post("/courses/:courseId/modules", courseValidators.CourseParam(), courseValidators.CreateModule(), courseControllers.CreateModule)
	adminGroup.Patch("/modules/:moduleId", courseValidators.ModuleParam(), courseValidators.UpdateModule(), courseControllers.UpdateModule)
	adminGroup.Delete("/modules/:moduleId", courseValidators.ModuleParam(), courseControllers.DeleteModule)

	adminGroup.Post("/modules/:moduleId/lessons", courseValidators.ModuleParam(), courseValidators.CreateLesson(), courseControllers.CreateLesson)
	adminGroup.Patch("/lessons/:lessonId", courseValidators.LessonParam(), courseValidators.UpdateLesson(), courseControllers.UpdateLesson)
	adminGroup.Delete("/lessons/:lessonId", courseValidators.LessonParam(), courseControllers.DeleteLesson)

	adminGroup.Post("/lessons/:lessonId/quiz", courseValidators.LessonParam(), courseValidators.CreateQuiz(), courseControllers.CreateQuiz)
	adminGroup.Get("/quiz/:quizId", courseValidators.QuizParam(), courseControllers.GetAdminQuiz)
	adminGroup.Post("/quiz/:quizId/questions", courseValidators.QuizParam(), courseValidators.AddQuestion(), courseControllers.AddQuizQuestion)

	adminGroup.Post("/lessons/:lessonId/assignment", courseValidators.LessonParam(), courseValidators.CreateAssignment(), courseControllers.CreateAssignment)
	adminGroup.Get("/assignments/:assignmentId/submissions", courseValidators.AssignmentParam(), courseControllers.GetAssignmentSubmissions)
}
