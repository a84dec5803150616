package eventRoutes

import (
	eventController "esd/controllers/events"
	"esd/middleware"
	eventValidator "esd/validators/event"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App) {
	eventGroup := app.Group("/api/events", middleware.JWTMiddleware)

	eventGroup.Get("/", eventController.ListEvents)
	eventGroup.Post("/", eventValidator.CreateEvent(), middleware.RequirePermission(middleware.ActManageEvents), eventController.CreateEvent)
	eventGroup.Patch("/:id", middleware.RequirePermission(middleware.ActManageEvents), eventController.UpdateEvent)
	eventGroup.Delete("/:id", middleware.RequirePermission(middleware.ActManageEvents), eventController.DeleteEvent)
	eventGroup.Post("/:id/register", eventController.RegisterForEvent)
	eventGroup.Delete("/:id/register", eventController.UnregisterFromEvent)
	eventGroup.Get("/:id/attendees", middleware.RequirePermission(middleware.ActManageEvents), eventController.GetEventAttendees)
}
