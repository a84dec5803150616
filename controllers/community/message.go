package communityController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"esd/utils"

	"github.com/gofiber/fiber/v2"
)

// SendMessage stores a moderated message and fans it out to the room over
// the realtime hub.
func SendMessage(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	communityID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid community id!", nil)
	}

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message content is required!", nil)
	}

	db := database.Database.Db

	var community models.Community
	if err := db.Where("id = ? AND is_deleted = ?", communityID, false).First(&community).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Community not found!", nil)
	}

	if !isMember(community.ID, user.ID) && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must join the community first!", nil)
	}

	verdict := utils.ModerateContent(reqData.Content)
	if verdict.Flagged {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"Message rejected by content moderation.", fiber.Map{"reason": verdict.Reason})
	}

	message := models.Message{
		CommunityID: community.ID,
		SenderID:    user.ID,
		Content:     reqData.Content,
	}

	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	services.Emit(services.CommunityRoom(community.ID), services.EventNewMessage, fiber.Map{
		"messageId":   message.ID,
		"communityId": community.ID,
		"senderId":    user.ID,
		"senderName":  user.Name,
		"content":     message.Content,
		"sentAt":      message.CreatedAt,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent.", message)
}

// ListMessages pages through room history, newest first.
func ListMessages(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	communityID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid community id!", nil)
	}

	db := database.Database.Db

	var community models.Community
	if err := db.Where("id = ? AND is_deleted = ?", communityID, false).First(&community).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Community not found!", nil)
	}

	if !isMember(community.ID, user.ID) && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must join the community first!", nil)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var messages []models.Message
	if err := db.Where("community_id = ? AND is_deleted = ?", community.ID, false).
		Order("created_at desc").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched.", messages)
}

// EditMessage lets the sender revise their own message. The edit is
// re-moderated like a new message.
func EditMessage(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	messageID, err := c.ParamsInt("messageId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message id!", nil)
	}

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message content is required!", nil)
	}

	db := database.Database.Db

	var message models.Message
	if err := db.Where("id = ? AND is_deleted = ?", messageID, false).First(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}
	if message.SenderID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own messages!", nil)
	}

	verdict := utils.ModerateContent(reqData.Content)
	if verdict.Flagged {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"Message rejected by content moderation.", fiber.Map{"reason": verdict.Reason})
	}

	message.Content = reqData.Content
	message.IsEdited = true

	if err := db.Save(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to edit message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message edited.", message)
}

// DeleteMessage removes a message. Sender or staff.
func DeleteMessage(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	messageID, err := c.ParamsInt("messageId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message id!", nil)
	}

	db := database.Database.Db

	var message models.Message
	if err := db.Where("id = ? AND is_deleted = ?", messageID, false).First(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if message.SenderID != user.ID && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this message!", nil)
	}

	if err := db.Model(&message).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message deleted.", nil)
}
