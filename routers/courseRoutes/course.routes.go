package courseRoutes

import (
	courseControllers "worldone/controllers/course"
	"worldone/middleware"
	courseValidators "worldone/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the learner-facing catalog, player, progress
// and assessment routes. Content routes use the optional JWT so anonymous
// visitors can reach the catalog and free-preview lessons.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", courseValidators.List(), courseControllers.GetAllCourses)
	courseGroup.Get("/:slug", courseValidators.CourseSlug(), middleware.OptionalJWTMiddleware, courseControllers.GetCourseDetails)
	courseGroup.Get("/:slug/lesson/:lessonId", courseValidators.CourseSlug(), courseValidators.LessonParam(), middleware.OptionalJWTMiddleware, courseControllers.GetLesson)
	courseGroup.Get("/:slug/lesson/:lessonId/quiz", courseValidators.CourseSlug(), courseValidators.LessonParam(), middleware.OptionalJWTMiddleware, courseControllers.GetLessonQuiz)
	courseGroup.Get("/:slug/lesson/:lessonId/assignment", courseValidators.CourseSlug(), courseValidators.LessonParam(), middleware.OptionalJWTMiddleware, courseControllers.GetLessonAssignment)

	// Progress tracking
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)
	progressGroup.Post("/course/:courseId/lesson/:lessonId/toggle", courseValidators.CourseParam(), courseValidators.LessonParam(), courseControllers.ToggleLessonProgress)
	progressGroup.Patch("/course/:courseId/lesson/:lessonId/position", courseValidators.CourseParam(), courseValidators.LessonParam(), courseControllers.UpdateLessonPosition)
	progressGroup.Get("/course/:courseId", courseValidators.CourseParam(), courseControllers.GetUserProgress)

	// Assessments
	assessmentGroup := app.Group("/assessments", middleware.JWTMiddleware)
	assessmentGroup.Post("/quiz/submit", courseValidators.SubmitQuiz(), courseControllers.SubmitQuiz)
	assessmentGroup.Get("/quiz/:quizId/attempts", courseValidators.QuizParam(), courseControllers.GetQuizAttempts)
	assessmentGroup.Post("/assignment/:assignmentId/submit", courseValidators.AssignmentParam(), courseControllers.SubmitAssignment)
}
