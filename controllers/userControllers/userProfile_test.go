package userControllers

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
	userValidator "worldone/validators/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/user/profile", middleware.JWTMiddleware, GetProfile)
	app.Patch("/user/profile", userValidator.UpdateProfile(), middleware.JWTMiddleware, UpdateProfile)
	app.Patch("/user/status", userValidator.SetStatus(), middleware.JWTMiddleware, AdminSetUserStatus)
	app.Post("/user/create", userValidator.CreateUser(), middleware.JWTMiddleware, AdminCreateUser)
	return app
}

func seedUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		FullName: "Test " + role,
		Username: "u" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed",
		Role:     role,
		Status:   models.StatusActive,
	}
	require.NoError(t, database.Database.Db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
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

func TestProfile(t *testing.T) {
	app := setupUserApp(t)
	user, token := seedUser(t, models.RoleStudent)

	t.Run("fetch own profile hides the password", func(t *testing.T) {
		status, parsed := call(t, app, http.MethodGet, "/user/profile", token, nil)
		assert.Equal(t, http.StatusOK, status)

		data := parsed["data"].(map[string]interface{})
		assert.Equal(t, user.Email, data["email"])
		_, hasPassword := data["password"]
		assert.False(t, hasPassword)
	})

	t.Run("update display name", func(t *testing.T) {
		status, parsed := call(t, app, http.MethodPatch, "/user/profile", token, fiber.Map{
			"full_name": "Renamed Student",
		})
		assert.Equal(t, http.StatusOK, status)
		data := parsed["data"].(map[string]interface{})
		assert.Equal(t, "Renamed Student", data["full_name"])
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/user/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestAdminSetUserStatus(t *testing.T) {
	app := setupUserApp(t)
	_, adminToken := seedUser(t, models.RoleAdmin)
	student, studentToken := seedUser(t, models.RoleStudent)

	t.Run("non-admin cannot change status", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPatch, "/user/status", studentToken, fiber.Map{
			"user_id": student.ID,
			"status":  models.StatusBlocked,
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin blocks an account", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPatch, "/user/status", adminToken, fiber.Map{
			"user_id": student.ID,
			"status":  models.StatusBlocked,
		})
		assert.Equal(t, http.StatusOK, status)

		var fresh models.User
		require.NoError(t, database.Database.Db.First(&fresh, student.ID).Error)
		assert.Equal(t, models.StatusBlocked, fresh.Status)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPatch, "/user/status", adminToken, fiber.Map{
			"user_id": student.ID,
			"status":  "frozen",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestAdminCreateUser(t *testing.T) {
	app := setupUserApp(t)
	_, adminToken := seedUser(t, models.RoleAdmin)
	_, studentToken := seedUser(t, models.RoleStudent)

	t.Run("non-admin cannot provision accounts", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPost, "/user/create", studentToken, fiber.Map{
			"full_name": "New Instructor",
			"username":  "teachone",
			"email":     "teach@example.com",
			"password":  "password123",
			"role":      models.RoleInstructor,
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin creates an active instructor", func(t *testing.T) {
		status, parsed := call(t, app, http.MethodPost, "/user/create", adminToken, fiber.Map{
			"full_name": "New Instructor",
			"username":  "teachone",
			"email":     "teach@example.com",
			"password":  "password123",
			"role":      models.RoleInstructor,
		})
		require.Equal(t, http.StatusCreated, status)

		data := parsed["data"].(map[string]interface{})
		assert.Equal(t, models.RoleInstructor, data["role"])
		assert.Equal(t, models.StatusActive, data["status"])
	})

	t.Run("student can be linked to a parent", func(t *testing.T) {
		parent, _ := seedUser(t, models.RoleParent)

		status, parsed := call(t, app, http.MethodPost, "/user/create", adminToken, fiber.Map{
			"full_name": "Linked Child",
			"username":  "childone",
			"email":     "child@example.com",
			"password":  "password123",
			"role":      models.RoleStudent,
			"parent_id": parent.ID,
		})
		require.Equal(t, http.StatusCreated, status)

		data := parsed["data"].(map[string]interface{})
		assert.Equal(t, float64(parent.ID), data["parent_id"])
	})

	t.Run("only students can carry a parent link", func(t *testing.T) {
		parent, _ := seedUser(t, models.RoleParent)

		status, _ := call(t, app, http.MethodPost, "/user/create", adminToken, fiber.Map{
			"full_name": "Bad Link",
			"username":  "badlink",
			"email":     "badlink@example.com",
			"password":  "password123",
			"role":      models.RoleInstructor,
			"parent_id": parent.ID,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("linking to a non-parent account fails", func(t *testing.T) {
		other, _ := seedUser(t, models.RoleStudent)

		status, _ := call(t, app, http.MethodPost, "/user/create", adminToken, fiber.Map{
			"full_name": "Orphan",
			"username":  "orphanone",
			"email":     "orphan@example.com",
			"password":  "password123",
			"role":      models.RoleStudent,
			"parent_id": other.ID,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPost, "/user/create", adminToken, fiber.Map{
			"full_name": "Mystery",
			"username":  "mystery",
			"email":     "mystery@example.com",
			"password":  "password123",
			"role":      "superuser",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}
