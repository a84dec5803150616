package resourceRoutes

import (
	resourceController "esd/controllers/resource"
	syllabusController "esd/controllers/syllabus"
	"esd/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupResourceRoutes(app *fiber.App) {
	resourceGroup := app.Group("/api/resources", middleware.JWTMiddleware)

	resourceGroup.Post("/", middleware.RequirePermission(middleware.ActManageResources), resourceController.UploadResource)
	resourceGroup.Get("/", resourceController.ListResources)
	resourceGroup.Get("/:id/download", resourceController.DownloadResource)
	resourceGroup.Patch("/:id", middleware.LoadUser, resourceController.UpdateResource)
	resourceGroup.Delete("/:id", middleware.LoadUser, resourceController.DeleteResource)

	syllabusGroup := app.Group("/api/syllabi", middleware.JWTMiddleware)

	syllabusGroup.Post("/", middleware.RequirePermission(middleware.ActManageResources), syllabusController.CreateSyllabus)
	syllabusGroup.Get("/", syllabusController.ListSyllabi)
	syllabusGroup.Get("/:id", syllabusController.GetSyllabus)
	syllabusGroup.Patch("/:id", middleware.RequirePermission(middleware.ActManageResources), syllabusController.UpdateSyllabus)
	syllabusGroup.Delete("/:id", middleware.RequirePermission(middleware.ActManageResources), syllabusController.DeleteSyllabus)
}
