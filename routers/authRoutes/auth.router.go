package authRoutes

import (
	authController "esd/controllers/auth"
	otpController "esd/controllers/otp"
	"esd/middleware"
	authValidator "esd/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/send/otp", authValidator.SendOTP(), otpController.SendOTP)
	authGroup.Patch("/verify/otp", authValidator.VerifyOTP(), otpController.VerifyOTP)

	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Patch("/profile", middleware.JWTMiddleware, authController.UpdateProfile)
	authGroup.Put("/change/password", authValidator.ChangePassword(), middleware.JWTMiddleware, authController.ChangePassword)
}
