package authController

import (
	"esd/config"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 5
	blockDuration   = 15 * time.Minute
)

func Signup(c *fiber.Ctx) error {
	var reqData models.User

	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Self-signup only creates students; staff accounts are provisioned by a
	// super admin through the admin surface.
	role := models.RoleStudent

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:           reqData.Name,
		Email:          reqData.Email,
		Mobile:         reqData.Mobile,
		RollNumber:     reqData.RollNumber,
		Department:     reqData.Department,
		CohortYear:     reqData.CohortYear,
		Role:           role,
		Password:       string(hashedPassword),
		ApprovalStatus: models.ApprovalPending,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Awaiting admin approval.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Temporary block after repeated failures
	if user.IsBlocked && user.BlockedUntil != nil {
		if time.Now().Before(*user.BlockedUntil) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account temporarily blocked. Try again later.", nil)
		}
		user.IsBlocked = false
		user.FailedLoginAttempts = 0
		user.BlockedUntil = nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		failedAt := time.Now()
		user.LastFailedLogin = &failedAt
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
			blockedUntil := time.Now().Add(blockDuration)
			user.BlockedUntil = &blockedUntil
		}
		database.Database.Db.Save(&user)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is deactivated!", nil)
	}

	if user.Role == models.RoleStudent && user.ApprovalStatus != models.ApprovalApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is awaiting admin approval!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.FailedLoginAttempts = 0
	user.LastLogin = time.Now()
	database.Database.Db.Save(&user)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func GetProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", user)
}

func UpdateProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	reqData := new(struct {
		Name         string `json:"name"`
		Mobile       string `json:"mobile"`
		Department   string `json:"department"`
		ProfileImage string `json:"profileImage"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		user.Mobile = reqData.Mobile
	}
	if reqData.Department != "" {
		user.Department = reqData.Department
	}
	if reqData.ProfileImage != "" {
		user.ProfileImage = reqData.ProfileImage
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

func ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	reqData := new(struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Old password is incorrect!", nil)
	}

	if len(reqData.NewPassword) < 8 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "New password must be at least 8 characters long!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashed)
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}
