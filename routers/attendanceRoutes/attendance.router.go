package attendanceRoutes

import (
	attendanceController "esd/controllers/attendance"
	mentorFeedbackController "esd/controllers/mentorFeedback"
	"esd/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App) {
	attendanceGroup := app.Group("/api/attendance", middleware.JWTMiddleware)

	attendanceGroup.Post("/", middleware.RequirePermission(middleware.ActMarkAttendance), attendanceController.MarkAttendance)
	attendanceGroup.Post("/bulk", middleware.RequirePermission(middleware.ActMarkAttendance), attendanceController.BulkMarkAttendance)
	attendanceGroup.Get("/me", middleware.LoadUser, attendanceController.GetStudentAttendance)
	attendanceGroup.Get("/session", middleware.RequirePermission(middleware.ActMarkAttendance), attendanceController.GetSessionAttendance)

	feedbackGroup := app.Group("/api/feedback", middleware.JWTMiddleware)

	feedbackGroup.Post("/", middleware.RequirePermission(middleware.ActMentorFeedback), mentorFeedbackController.SubmitFeedback)
	feedbackGroup.Get("/teams/:teamId", middleware.LoadUser, mentorFeedbackController.GetTeamFeedback)
	feedbackGroup.Get("/mine", middleware.RequirePermission(middleware.ActMentorFeedback), mentorFeedbackController.ListMentorFeedback)
}
