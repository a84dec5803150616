package adminRoutes

import (
	adminController "esd/controllers/admin"
	"esd/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware)

	adminGroup.Get("/users/pending", middleware.RequirePermission(middleware.ActManageUsers), adminController.ListPendingUsers)
	adminGroup.Patch("/users/:id/approve", middleware.RequirePermission(middleware.ActManageUsers), adminController.ApproveUser)
	adminGroup.Patch("/users/:id/deactivate", middleware.RequirePermission(middleware.ActManageUsers), adminController.DeactivateUser)
	adminGroup.Patch("/users/:id/role", middleware.RequirePermission(middleware.ActManageRoles), adminController.UpdateUserRole)
	adminGroup.Get("/users", middleware.RequirePermission(middleware.ActManageUsers), adminController.ListUsers)
	adminGroup.Get("/stats", middleware.RequirePermission(middleware.ActManageUsers), adminController.DashboardStats)
}
