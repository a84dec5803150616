package communityController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

func isMember(communityID, userID uint) bool {
	var count int64
	database.Database.Db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND is_deleted = ?", communityID, userID, false).
		Count(&count)
	return count > 0
}

// CreateCommunity creates a room with the caller as owner.
func CreateCommunity(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"isPrivate"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Community name is required!", nil)
	}

	db := database.Database.Db

	community := models.Community{
		Name:        reqData.Name,
		Description: reqData.Description,
		IsPrivate:   reqData.IsPrivate,
		CreatedBy:   user.ID,
		MemberCount: 1,
	}

	if err := db.Create(&community).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create community!", nil)
	}

	db.Create(&models.CommunityMember{
		CommunityID: community.ID,
		UserID:      user.ID,
		RoleInRoom:  "owner",
		JoinedAt:    time.Now(),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Community created.", community)
}

// ListCommunities returns public rooms plus the caller's private ones.
func ListCommunities(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)
	db := database.Database.Db

	var communities []models.Community
	if err := db.Where("is_deleted = ? AND (is_private = ? OR id IN (?))", false, false,
		db.Model(&models.CommunityMember{}).Select("community_id").
			Where("user_id = ? AND is_deleted = ?", user.ID, false),
	).Order("name asc").Find(&communities).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch communities!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Communities fetched.", communities)
}

// GetCommunity returns one room with members. Private rooms require
// membership.
func GetCommunity(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	communityID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid community id!", nil)
	}

	db := database.Database.Db

	var community models.Community
	if err := db.Preload("Members", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", communityID, false).First(&community).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Community not found!", nil)
	}

	if community.IsPrivate && !isMember(community.ID, user.ID) && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This community is private!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Community fetched.", community)
}

// JoinCommunity enrols the caller into a public room.
func JoinCommunity(c *fiber.Ctx) error {
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

	if community.IsPrivate && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This community is invite only!", nil)
	}
	if isMember(community.ID, user.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already a member!", nil)
	}

	if err := db.Create(&models.CommunityMember{
		CommunityID: community.ID,
		UserID:      user.ID,
		RoleInRoom:  "member",
		JoinedAt:    time.Now(),
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join community!", nil)
	}

	db.Model(&community).Update("member_count", community.MemberCount+1)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined community.", nil)
}

// AddMember invites a user into a room. Owner/moderator or staff.
func AddMember(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	communityID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid community id!", nil)
	}

	reqData := new(struct {
		UserID uint `json:"userId"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.UserID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User id is required!", nil)
	}

	db := database.Database.Db

	var community models.Community
	if err := db.Where("id = ? AND is_deleted = ?", communityID, false).First(&community).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Community not found!", nil)
	}

	var membership models.CommunityMember
	memberErr := db.Where("community_id = ? AND user_id = ? AND is_deleted = ?", community.ID, user.ID, false).
		First(&membership).Error
	canInvite := user.IsStaff() || (memberErr == nil && membership.RoleInRoom != "member")
	if !canInvite {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only owners and moderators can add members!", nil)
	}

	var target models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if isMember(community.ID, target.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already a member!", nil)
	}

	if err := db.Create(&models.CommunityMember{
		CommunityID: community.ID,
		UserID:      target.ID,
		RoleInRoom:  "member",
		JoinedAt:    time.Now(),
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add member!", nil)
	}

	db.Model(&community).Update("member_count", community.MemberCount+1)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member added.", nil)
}

// LeaveCommunity removes the caller from a room. Owners must transfer or
// delete the room instead.
func LeaveCommunity(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	communityID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid community id!", nil)
	}

	db := database.Database.Db

	var membership models.CommunityMember
	if err := db.Where("community_id = ? AND user_id = ? AND is_deleted = ?", communityID, user.ID, false).
		First(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not a member of this community!", nil)
	}
	if membership.RoleInRoom == "owner" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Owners cannot leave their own community!", nil)
	}

	if err := db.Model(&membership).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to leave community!", nil)
	}

	var community models.Community
	if err := db.First(&community, membership.CommunityID).Error; err == nil && community.MemberCount > 0 {
		db.Model(&community).Update("member_count", community.MemberCount-1)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Left community.", nil)
}

// DeleteCommunity soft-deletes a room. Owner or staff.
func DeleteCommunity(c *fiber.Ctx) error {
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

	if community.CreatedBy != user.ID && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the owner can delete this community!", nil)
	}

	if err := db.Model(&community).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete community!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Community deleted.", nil)
}
