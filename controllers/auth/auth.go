package authController

import (
	"log"
	"time"

	"worldone/config"
	"worldone/database"
	"worldone/middleware"
	"worldone/models"
	"worldone/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const verifyTokenTTL = 48 * time.Hour

// Signup registers a new student account. The account starts inactive and
// must confirm its email before the first login succeeds.
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		FullName string `json:"full_name" validate:"required,min=2"`
		Username string `json:"username" validate:"required,alphanum,min=3"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Duplicate email/username surface as 409 with a readable message
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already taken!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	expiry := time.Now().Add(verifyTokenTTL)
	newUser := models.User{
		FullName:     reqData.FullName,
		Username:     reqData.Username,
		Email:        reqData.Email,
		Password:     string(hashedPassword),
		Role:         models.RoleStudent,
		Status:       models.StatusInactive,
		VerifyToken:  uuid.NewString(),
		VerifyExpiry: &expiry,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	verifyLink := config.AppConfig.SiteURL + "/verify?token=" + newUser.VerifyToken
	utils.SendVerificationEmail(newUser.Email, newUser.FullName, verifyLink)

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Please verify your email.", newUser)
}

// VerifyEmail confirms a verification token. Status promotion itself happens
// at the next login, this only records the verification timestamp.
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification token is required!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("verify_token = ? AND is_deleted = ?", token, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid verification token!", nil)
	}

	if user.VerifyExpiry != nil && user.VerifyExpiry.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Verification token has expired!", nil)
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.VerifyToken = ""
	user.VerifyExpiry = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving email verification: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify email!", nil)
	}

	utils.SendWelcomeEmail(user.Email, user.FullName)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully. You can now log in.", nil)
}

// Login authenticates credentials, then reconciles the account status before
// issuing a session token. Denials issue no token, so no partially
// authenticated session can persist.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	decision := ReconcileStatus(user.Status, user.EmailVerifiedAt != nil)
	if !decision.Allow {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, decision.Reason, nil)
	}
	if decision.Promote {
		user.Status = models.StatusActive
	}

	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving login state: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}
