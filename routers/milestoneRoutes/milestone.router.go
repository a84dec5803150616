package milestoneRoutes

import (
	milestoneController "esd/controllers/milestone"
	questionParserController "esd/controllers/questionParser"
	"esd/middleware"
	milestoneValidator "esd/validators/milestone"

	"github.com/gofiber/fiber/v2"
)

func SetupMilestoneRoutes(app *fiber.App) {
	chainGroup := app.Group("/api/chains", middleware.JWTMiddleware)

	chainGroup.Post("/", milestoneValidator.CreateChain(), middleware.RequirePermission(middleware.ActManageChains), milestoneController.CreateChain)
	chainGroup.Get("/", milestoneController.ListChains)
	chainGroup.Get("/:id", milestoneController.GetChain)
	chainGroup.Patch("/:id", middleware.RequirePermission(middleware.ActManageChains), milestoneController.UpdateChain)
	chainGroup.Post("/:id/publish", middleware.RequirePermission(middleware.ActManageChains), milestoneController.PublishChain)
	chainGroup.Post("/:id/archive", middleware.RequirePermission(middleware.ActManageChains), milestoneController.ArchiveChain)
	chainGroup.Delete("/:id", middleware.RequirePermission(middleware.ActManageChains), milestoneController.DeleteChain)

	chainGroup.Post("/:chainId/milestones", milestoneValidator.CreateMilestone(), middleware.RequirePermission(middleware.ActManageChains), milestoneController.CreateMilestone)
	chainGroup.Get("/:chainId/progress", milestoneController.GetStudentProgress)
	chainGroup.Get("/:chainId/submissions/pending", middleware.RequirePermission(middleware.ActGradeSubmissions), milestoneController.ListPendingSubmissions)

	milestoneGroup := app.Group("/api/milestones", middleware.JWTMiddleware)

	milestoneGroup.Get("/:id", milestoneController.GetMilestone)
	milestoneGroup.Patch("/:id", middleware.RequirePermission(middleware.ActManageChains), milestoneController.UpdateMilestone)
	milestoneGroup.Delete("/:id", middleware.RequirePermission(middleware.ActManageChains), milestoneController.DeleteMilestone)

	milestoneGroup.Post("/:milestoneId/start", milestoneController.StartMilestone)
	milestoneGroup.Post("/:milestoneId/submit", milestoneController.SubmitAssignment)
	milestoneGroup.Post("/:milestoneId/quiz", milestoneController.SubmitQuizAnswers)
	milestoneGroup.Patch("/submissions/:id/grade", milestoneValidator.GradeSubmission(), middleware.RequirePermission(middleware.ActGradeSubmissions), milestoneController.GradeSubmission)

	parserGroup := app.Group("/api/questions", middleware.JWTMiddleware, middleware.RequirePermission(middleware.ActParseQuestions))

	parserGroup.Post("/parse/text", questionParserController.ParseFromText)
	parserGroup.Post("/parse/file", questionParserController.ParseFromFile)
}
