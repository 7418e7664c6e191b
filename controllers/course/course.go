package controllers

import (
	"worldone/database"
	"worldone/middleware"
	courseModels "worldone/models/course"

	"github.com/gofiber/fiber/v2"
)

// Curriculum teaser shown to viewers without full access: the first 2
// modules, and the first 3 lessons of each. This is a marketing truncation,
// not a security boundary; per-lesson access is enforced separately.
const (
	previewModuleCount = 2
	previewLessonCount = 3
)

// ModuleWithLessons is a module plus its ordered lessons, as served on the
// course detail page
type ModuleWithLessons struct {
	courseModels.Module
	Lessons []courseModels.Lesson `json:"lessons"`
}

// TruncateCurriculum applies the teaser policy. Full viewers (enrolled or
// staff) see everything; everyone else gets the truncated curriculum.
func TruncateCurriculum(modules []ModuleWithLessons, fullAccess bool) []ModuleWithLessons {
	if fullAccess {
		return modules
	}

	visible := modules
	if len(visible) > previewModuleCount {
		visible = visible[:previewModuleCount]
	}

	truncated := make([]ModuleWithLessons, len(visible))
	for i, mod := range visible {
		truncated[i] = mod
		if len(mod.Lessons) > previewLessonCount {
			truncated[i].Lessons = mod.Lessons[:previewLessonCount]
		}
	}
	return truncated
}

// loadCurriculum fetches the ordered modules and lessons of a course.
// Ordering is (order_index asc, created_at asc) at both levels; this is also
// the traversal order used for auto-advance.
func loadCurriculum(courseID uint) ([]ModuleWithLessons, error) {
	var modules []courseModels.Module
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, created_at asc").
		Find(&modules).Error; err != nil {
		return nil, err
	}

	moduleIDs := make([]uint, len(modules))
	for i, mod := range modules {
		moduleIDs[i] = mod.ID
	}

	var lessons []courseModels.Lesson
	if len(moduleIDs) > 0 {
		if err := database.Database.Db.
			Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
			Order("order_index asc, created_at asc").
			Find(&lessons).Error; err != nil {
			return nil, err
		}
	}

	result := make([]ModuleWithLessons, len(modules))
	for i, mod := range modules {
		result[i] = ModuleWithLessons{Module: mod, Lessons: []courseModels.Lesson{}}
		for _, lesson := range lessons {
			if lesson.ModuleID == mod.ID {
				result[i].Lessons = append(result[i].Lessons, lesson)
			}
		}
	}
	return result, nil
}

// GetAllCourses lists published courses for the public catalog
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 12
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails serves the course sales page: course info plus the
// (possibly truncated) curriculum and the viewer's enrollment context.
func GetCourseDetails(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadCurriculum(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch curriculum!", nil)
	}

	user := currentUser(c.Locals("userId"))
	enrolled := false
	staff := false
	if user != nil {
		staff = user.IsStaff()
		if !staff {
			enrolled = isEnrolled(user.ID, course.ID)
		}
	}

	totalLessons := 0
	for _, mod := range modules {
		totalLessons += len(mod.Lessons)
	}

	fullAccess := staff || enrolled
	visible := TruncateCurriculum(modules, fullAccess)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":          course,
		"modules":         visible,
		"total_modules":   len(modules),
		"total_lessons":   totalLessons,
		"is_enrolled":     enrolled,
		"is_staff":        staff,
		"full_curriculum": fullAccess,
	})
}
