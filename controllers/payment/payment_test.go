package paymentController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"worldone/config"
	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	courseModels "worldone/models/course"
	paymentValidator "worldone/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPaymentApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/payments/mock-process", middleware.JWTMiddleware, paymentValidator.MockCheckout(), MockProcessPayment)
	app.Get("/user/enrollments", middleware.JWTMiddleware, GetUserEnrollments)
	return app
}

func seedBuyer(t *testing.T) (*models.User, string) {
	t.Helper()
	user := &models.User{
		FullName: "Buyer",
		Username: "b" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed",
		Role:     models.RoleStudent,
		Status:   models.StatusActive,
	}
	require.NoError(t, database.Database.Db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedPublishedCourse(t *testing.T, slug string, price float64) *courseModels.Course {
	t.Helper()
	course := &courseModels.Course{
		Slug:        slug,
		Title:       "Course " + slug,
		Price:       price,
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(course).Error)
	return course
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestMockProcessPayment(t *testing.T) {
	app := setupPaymentApp(t)
	buyer, token := seedBuyer(t)
	courseA := seedPublishedCourse(t, "course-a", 29)
	courseB := seedPublishedCourse(t, "course-b", 49)

	t.Run("checkout records the payment and enrolls the buyer", func(t *testing.T) {
		status, parsed := request(t, app, http.MethodPost, "/payments/mock-process", token, fiber.Map{
			"course_ids": []uint{courseA.ID, courseB.ID},
		})
		require.Equal(t, http.StatusCreated, status)

		data := parsed["data"].(map[string]interface{})
		payment := data["payment"].(map[string]interface{})
		assert.Equal(t, "SUCCESS", payment["status"])
		assert.Equal(t, 78.0, payment["amount"])
		assert.NotEmpty(t, payment["reference"])

		var enrollments []courseModels.Enrollment
		database.Database.Db.Where("user_id = ?", buyer.ID).Find(&enrollments)
		assert.Len(t, enrollments, 2)

		var items int64
		database.Database.Db.Model(&models.PaymentItem{}).Count(&items)
		assert.Equal(t, int64(2), items)
	})

	t.Run("re-buying an owned course keeps one enrollment", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/payments/mock-process", token, fiber.Map{
			"course_ids": []uint{courseA.ID},
		})
		require.Equal(t, http.StatusCreated, status)

		var count int64
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("user_id = ? AND course_id = ?", buyer.ID, courseA.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown course fails the whole checkout", func(t *testing.T) {
		var paymentsBefore int64
		database.Database.Db.Model(&models.Payment{}).Count(&paymentsBefore)

		status, _ := request(t, app, http.MethodPost, "/payments/mock-process", token, fiber.Map{
			"course_ids": []uint{99999},
		})
		assert.Equal(t, http.StatusNotFound, status)

		var paymentsAfter int64
		database.Database.Db.Model(&models.Payment{}).Count(&paymentsAfter)
		assert.Equal(t, paymentsBefore, paymentsAfter)
	})

	t.Run("unpublished course cannot be bought", func(t *testing.T) {
		draft := &courseModels.Course{Slug: "draft-course", Title: "Draft", Price: 10}
		require.NoError(t, database.Database.Db.Create(draft).Error)

		status, _ := request(t, app, http.MethodPost, "/payments/mock-process", token, fiber.Map{
			"course_ids": []uint{draft.ID},
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("empty cart fails validation", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/payments/mock-process", token, fiber.Map{
			"course_ids": []uint{},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("anonymous checkout is rejected", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/payments/mock-process", "", fiber.Map{
			"course_ids": []uint{courseA.ID},
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("enrollments listing includes course details", func(t *testing.T) {
		status, parsed := request(t, app, http.MethodGet, "/user/enrollments", token, nil)
		require.Equal(t, http.StatusOK, status)

		data := parsed["data"].(map[string]interface{})
		enrollments := data["enrollments"].([]interface{})
		assert.Len(t, enrollments, 2)

		first := enrollments[0].(map[string]interface{})
		course := first["course"].(map[string]interface{})
		assert.NotEmpty(t, course["title"])
	})
}
