package teamRoutes

import (
	teamController "esd/controllers/team"
	"esd/middleware"
	teamValidator "esd/validators/team"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App) {
	teamGroup := app.Group("/api/teams", middleware.JWTMiddleware)

	teamGroup.Post("/", teamValidator.CreateTeam(), teamController.CreateTeam)
	teamGroup.Get("/", teamController.ListTeams)
	teamGroup.Get("/:id", teamController.GetTeam)
	teamGroup.Post("/:id/join", teamController.JoinTeam)
	teamGroup.Post("/leave", teamController.LeaveTeam)
	teamGroup.Patch("/:id/mentor", teamValidator.AssignMentor(), middleware.RequirePermission(middleware.ActManageUsers), teamController.AssignMentor)
}
