package forumController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePost runs the content through the moderation gate and stores the
// post only when it passes.
func CreatePost(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	reqData := new(struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and content are required!", nil)
	}
	if reqData.Category == "" {
		reqData.Category = "general"
	}

	verdict := utils.ModerateContent(reqData.Title + "\n" + reqData.Content)
	if verdict.Flagged {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"Post rejected by content moderation.", fiber.Map{"reason": verdict.Reason})
	}

	post := models.ForumPost{
		Title:    reqData.Title,
		Content:  reqData.Content,
		Category: reqData.Category,
		AuthorID: user.ID,
	}

	if err := database.Database.Db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created.", post)
}

// ListPosts returns posts, pinned first, optionally filtered by category.
func ListPosts(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var posts []models.ForumPost
	if err := query.Order("is_pinned desc, created_at desc").Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched.", posts)
}

// GetPost returns one post with its replies.
func GetPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	db := database.Database.Db

	var post models.ForumPost
	if err := db.Preload("Replies", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post fetched.", post)
}

// ReplyToPost adds a moderated reply and bumps the reply counter.
func ReplyToPost(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	postID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
	}

	db := database.Database.Db

	var post models.ForumPost
	if err := db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}
	if post.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Post is locked!", nil)
	}

	verdict := utils.ModerateContent(reqData.Content)
	if verdict.Flagged {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"Reply rejected by content moderation.", fiber.Map{"reason": verdict.Reason})
	}

	reply := models.ForumReply{
		PostID:   post.ID,
		AuthorID: user.ID,
		Content:  reqData.Content,
	}
	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	db.Model(&post).Update("reply_count", post.ReplyCount+1)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply posted.", reply)
}

// ModeratePost pins, locks or removes a post. Staff only via router.
func ModeratePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	reqData := new(struct {
		Action string `json:"action"` // pin, unpin, lock, unlock, remove
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var post models.ForumPost
	if err := db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	switch reqData.Action {
	case "pin":
		post.IsPinned = true
	case "unpin":
		post.IsPinned = false
	case "lock":
		post.IsLocked = true
	case "unlock":
		post.IsLocked = false
	case "remove":
		post.IsDeleted = true
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown moderation action!", nil)
	}

	if err := db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to moderate post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post moderated.", post)
}

// DeleteReply removes a reply. Author or staff.
func DeleteReply(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	replyID, err := c.ParamsInt("replyId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reply id!", nil)
	}

	db := database.Database.Db

	var reply models.ForumReply
	if err := db.Where("id = ? AND is_deleted = ?", replyID, false).First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	if reply.AuthorID != user.ID && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this reply!", nil)
	}

	if err := db.Model(&reply).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete reply!", nil)
	}

	var post models.ForumPost
	if err := db.First(&post, reply.PostID).Error; err == nil && post.ReplyCount > 0 {
		db.Model(&post).Update("reply_count", post.ReplyCount-1)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply deleted.", nil)
}
