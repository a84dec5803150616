package otpController

import (
	"esd/config"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SendOTP issues a fresh code for the given email, invalidating any earlier
// unconsumed codes for the same purpose.
func SendOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is required!", nil)
	}
	if reqData.Purpose == "" {
		reqData.Purpose = "verify-email"
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	// Drop earlier codes for the same purpose
	db.Where("user_id = ? AND purpose = ?", user.ID, reqData.Purpose).Delete(&models.OTP{})

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        code,
		Purpose:     reqData.Purpose,
		ExpiresAt:   time.Now().Add(time.Duration(config.AppConfig.OTPExpiryMinutes) * time.Minute),
		MaxAttempts: config.AppConfig.OTPMaxAttempts,
	}
	if err := db.Create(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate OTP!", nil)
	}

	utils.SendOTPEmail(user.Email, code, config.AppConfig.OTPExpiryMinutes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to registered email.", nil)
}

// VerifyOTP consumes a code. Every wrong guess increments the attempt
// counter; an exhausted or expired code is rejected and left for the
// eviction sweep.
func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email   string `json:"email"`
		Code    string `json:"code"`
		Purpose string `json:"purpose"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Purpose == "" {
		reqData.Purpose = "verify-email"
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	var otp models.OTP
	if err := db.Where("user_id = ? AND purpose = ? AND is_used = ?", user.ID, reqData.Purpose, false).
		Order("created_at desc").First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No pending OTP. Request a new one.", nil)
	}

	if time.Now().After(otp.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired. Request a new one.", nil)
	}

	if otp.Attempts >= otp.MaxAttempts {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Too many attempts. Request a new OTP.", nil)
	}

	if otp.Code != reqData.Code {
		otp.Attempts++
		db.Save(&otp)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Incorrect OTP!", nil)
	}

	otp.IsUsed = true
	db.Save(&otp)

	if reqData.Purpose == "verify-email" && !user.IsEmailVerified {
		user.IsEmailVerified = true
		db.Save(&user)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", nil)
}
