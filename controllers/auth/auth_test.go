package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worldone/config"
	"worldone/database"
	"worldone/models"
	authValidator "worldone/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Register(), Signup)
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Get("/auth/verify", VerifyEmail)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func seedAccount(t *testing.T, status string, verified bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	require.NoError(t, err)

	user := &models.User{
		FullName: "Test Account",
		Username: "u" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: string(hashed),
		Role:     models.RoleStudent,
		Status:   status,
	}
	if verified {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	require.NoError(t, database.Database.Db.Create(user).Error)
	return user
}

func TestSignup(t *testing.T) {
	app := setupAuthApp(t)

	body := fiber.Map{
		"full_name": "Ada Student",
		"username":  "adastudent",
		"email":     "ada@example.com",
		"password":  "password123",
	}

	t.Run("creates an inactive student with a verification token", func(t *testing.T) {
		status, parsed := postJSON(t, app, "/auth/signup", body)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, true, parsed["status"])

		var user models.User
		require.NoError(t, database.Database.Db.Where("email = ?", "ada@example.com").First(&user).Error)
		assert.Equal(t, models.StatusInactive, user.Status)
		assert.Equal(t, models.RoleStudent, user.Role)
		assert.NotEmpty(t, user.VerifyToken)
		assert.Nil(t, user.EmailVerifiedAt)
		assert.NotEqual(t, "password123", user.Password)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := fiber.Map{
			"full_name": "Other",
			"username":  "othername",
			"email":     "ada@example.com",
			"password":  "password123",
		}
		status, _ := postJSON(t, app, "/auth/signup", dup)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		dup := fiber.Map{
			"full_name": "Other",
			"username":  "adastudent",
			"email":     "other@example.com",
			"password":  "password123",
		}
		status, _ := postJSON(t, app, "/auth/signup", dup)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		bad := fiber.Map{
			"full_name": "Bad",
			"username":  "badpass",
			"email":     "bad@example.com",
			"password":  "short",
		}
		status, _ := postJSON(t, app, "/auth/signup", bad)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestVerifyEmail(t *testing.T) {
	app := setupAuthApp(t)

	user := seedAccount(t, models.StatusInactive, false)
	expiry := time.Now().Add(48 * time.Hour)
	token := uuid.NewString()
	require.NoError(t, database.Database.Db.Model(user).
		Updates(map[string]interface{}{"verify_token": token, "verify_expiry": expiry}).Error)

	t.Run("valid token records verification", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+token, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var fresh models.User
		require.NoError(t, database.Database.Db.First(&fresh, user.ID).Error)
		assert.NotNil(t, fresh.EmailVerifiedAt)
		assert.Empty(t, fresh.VerifyToken)
		// Status stays inactive until the next login
		assert.Equal(t, models.StatusInactive, fresh.Status)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+uuid.NewString(), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := seedAccount(t, models.StatusInactive, false)
		staleToken := uuid.NewString()
		staleExpiry := time.Now().Add(-time.Hour)
		require.NoError(t, database.Database.Db.Model(expired).
			Updates(map[string]interface{}{"verify_token": staleToken, "verify_expiry": staleExpiry}).Error)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+staleToken, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusGone, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app := setupAuthApp(t)

	login := func(email, password string) (int, map[string]interface{}) {
		return postJSON(t, app, "/auth/login", fiber.Map{"email": email, "password": password})
	}

	t.Run("wrong password is denied", func(t *testing.T) {
		user := seedAccount(t, models.StatusActive, true)
		status, parsed := login(user.Email, "wrongpassword")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials!", parsed["message"])
	})

	t.Run("unknown email is denied with the same message", func(t *testing.T) {
		status, parsed := login("nobody@example.com", "password123")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials!", parsed["message"])
	})

	t.Run("blocked account is denied", func(t *testing.T) {
		user := seedAccount(t, models.StatusBlocked, true)
		status, parsed := login(user.Email, "password123")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Account blocked. Contact support.", parsed["message"])
	})

	t.Run("unverified inactive account is denied", func(t *testing.T) {
		user := seedAccount(t, models.StatusInactive, false)
		status, parsed := login(user.Email, "password123")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Please verify your email before login.", parsed["message"])
	})

	t.Run("verified inactive account is promoted and logged in", func(t *testing.T) {
		user := seedAccount(t, models.StatusInactive, true)
		status, parsed := login(user.Email, "password123")
		assert.Equal(t, http.StatusOK, status)

		data := parsed["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])

		var fresh models.User
		require.NoError(t, database.Database.Db.First(&fresh, user.ID).Error)
		assert.Equal(t, models.StatusActive, fresh.Status)
	})

	t.Run("active account logs in and leaves a tracking row", func(t *testing.T) {
		user := seedAccount(t, models.StatusActive, true)
		status, _ := login(user.Email, "password123")
		assert.Equal(t, http.StatusOK, status)

		var count int64
		database.Database.Db.Model(&models.LoginTracking{}).
			Where("user_id = ?", user.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})
}
