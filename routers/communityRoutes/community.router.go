package communityRoutes

import (
	communityController "esd/controllers/community"
	forumController "esd/controllers/forum"
	"esd/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App) {
	forumGroup := app.Group("/api/forum", middleware.JWTMiddleware)

	forumGroup.Post("/posts", middleware.LoadUser, forumController.CreatePost)
	forumGroup.Get("/posts", forumController.ListPosts)
	forumGroup.Get("/posts/:id", forumController.GetPost)
	forumGroup.Post("/posts/:id/replies", middleware.LoadUser, forumController.ReplyToPost)
	forumGroup.Patch("/posts/:id/moderate", middleware.RequirePermission(middleware.ActModerateForum), forumController.ModeratePost)
	forumGroup.Delete("/replies/:replyId", middleware.LoadUser, forumController.DeleteReply)

	communityGroup := app.Group("/api/communities", middleware.JWTMiddleware, middleware.LoadUser)

	communityGroup.Post("/", communityController.CreateCommunity)
	communityGroup.Get("/", communityController.ListCommunities)
	communityGroup.Get("/:id", communityController.GetCommunity)
	communityGroup.Post("/:id/join", communityController.JoinCommunity)
	communityGroup.Post("/:id/members", communityController.AddMember)
	communityGroup.Post("/:id/leave", communityController.LeaveCommunity)
	communityGroup.Delete("/:id", communityController.DeleteCommunity)

	communityGroup.Post("/:id/messages", communityController.SendMessage)
	communityGroup.Get("/:id/messages", communityController.ListMessages)
	communityGroup.Patch("/messages/:messageId", communityController.EditMessage)
	communityGroup.Delete("/messages/:messageId", communityController.DeleteMessage)
}
