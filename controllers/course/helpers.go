package controllers

import (
	"worldone/database"
	"worldone/models"
	courseModels "worldone/models/course"
)

// currentUser resolves the authenticated user set by the JWT middleware.
// Returns nil when the request is anonymous or the account no longer exists.
func currentUser(cLocals interface{}) *models.User {
	userID, ok := cLocals.(uint)
	if !ok {
		return nil
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil
	}
	return &user
}

// isEnrolled reports whether the user holds an enrollment for the course.
// Checked fresh on every protected navigation, never cached.
func isEnrolled(userID, courseID uint) bool {
	var enrollment courseModels.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return err == nil
}
