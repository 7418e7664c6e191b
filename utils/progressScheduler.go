package utils

import (
	"log"
	"math"
	"time"

	"worldone/database"
	courseModels "worldone/models/course"

	"github.com/robfig/cron/v3"
)

// ReconcileEnrollmentProgress recomputes every enrollment's denormalized
// progress snapshot from the progress rows. Catches drift from lessons added
// or removed after enrollment.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	updated := 0
	for i := range enrollments {
		enrollment := &enrollments[i]

		var totalLessons int64
		db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
			Count(&totalLessons)

		var completedLessons int64
		db.Model(&courseModels.LessonProgress{}).
			Where("user_id = ? AND course_id = ? AND is_completed = ?", enrollment.UserID, enrollment.CourseID, true).
			Count(&completedLessons)

		progress := 0.0
		if totalLessons > 0 {
			progress = math.Round(100 * float64(completedLessons) / float64(totalLessons))
		}

		status := "ENROLLED"
		var completedAt *time.Time
		if progress >= 100 && totalLessons > 0 {
			status = "COMPLETED"
			if enrollment.CompletedAt != nil {
				completedAt = enrollment.CompletedAt
			} else {
				now := time.Now()
				completedAt = &now
			}
		} else if progress > 0 {
			status = "IN_PROGRESS"
		}

		if enrollment.Progress == progress &&
			enrollment.CompletedLessons == int(completedLessons) &&
			enrollment.TotalLessons == int(totalLessons) &&
			enrollment.Status == status {
			continue
		}

		enrollment.Progress = progress
		enrollment.CompletedLessons = int(completedLessons)
		enrollment.TotalLessons = int(totalLessons)
		enrollment.Status = status
		enrollment.CompletedAt = completedAt

		if err := db.Save(enrollment).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error saving enrollment %d: %v", enrollment.ID, err)
			continue
		}
		updated++
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciled %d enrollments, %d updated", len(enrollments), updated)
}

// StartProgressScheduler runs the reconciliation nightly
func StartProgressScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("@daily", ReconcileEnrollmentProgress); err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error scheduling reconciliation: %v", err)
		return
	}

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Nightly enrollment reconciliation scheduled")
}
