package examScheduleRoutes

import (
	examScheduleController "esd/controllers/examSchedule"
	"esd/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupExamScheduleRoutes(app *fiber.App) {
	scheduleGroup := app.Group("/api/schedules", middleware.JWTMiddleware)

	scheduleGroup.Post("/", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.CreateSchedule)
	scheduleGroup.Get("/", middleware.LoadUser, examScheduleController.ListSchedules)
	scheduleGroup.Get("/:id", middleware.LoadUser, examScheduleController.GetSchedule)
	scheduleGroup.Patch("/:id", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.UpdateSchedule)
	scheduleGroup.Post("/:id/activate", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.ActivateSchedule)
	scheduleGroup.Delete("/:id", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.DeleteSchedule)

	// Admin-driven one-shot distribution across every mentor
	scheduleGroup.Post("/:id/distribute", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.RandomDistributeTeams)

	// Mentor self-service flow
	scheduleGroup.Get("/:id/my-slots", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.GetMentorSlots)
	scheduleGroup.Post("/:id/mentor-config", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.ConfigureMentorSchedule)
	scheduleGroup.Post("/:id/mentor-distribute", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.DistributeToMentorSlots)
	scheduleGroup.Delete("/:id/mentor-slots", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.ClearMentorSlots)

	slotGroup := app.Group("/api/slots", middleware.JWTMiddleware)

	slotGroup.Patch("/:slotId/assign", middleware.RequirePermission(middleware.ActManageSchedules), examScheduleController.ManualAssignTeam)
	slotGroup.Patch("/:slotId", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.ManualEditMentorSlot)
	slotGroup.Post("/:slotId/complete", middleware.RequirePermission(middleware.ActMentorSlots), examScheduleController.CompleteSlot)
	slotGroup.Post("/:slotId/confirm", middleware.LoadUser, examScheduleController.ConfirmSlot)
}
