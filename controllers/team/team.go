package teamController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a team with the caller as leader and first member.
func CreateTeam(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	if user.TeamID != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already in a team!", nil)
	}

	var reqData models.Team
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Team name is required!", nil)
	}
	if reqData.MaxMembers <= 0 {
		reqData.MaxMembers = 5
	}

	db := database.Database.Db

	team := models.Team{
		Name:        reqData.Name,
		Description: reqData.Description,
		ProjectName: reqData.ProjectName,
		CohortYear:  user.CohortYear,
		LeaderID:    user.ID,
		MaxMembers:  reqData.MaxMembers,
		Status:      models.TeamStatusForming,
	}
	if err := db.Create(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create team!", nil)
	}

	member := models.TeamMember{
		TeamID:     team.ID,
		UserID:     user.ID,
		RoleInTeam: "leader",
		JoinedAt:   time.Now(),
	}
	db.Create(&member)

	user.TeamID = &team.ID
	db.Save(user)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team created successfully.", team)
}

// JoinTeam adds the caller to an existing team if capacity allows.
func JoinTeam(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	if user.TeamID != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already in a team!", nil)
	}

	teamID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", teamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	if team.Status == models.TeamStatusDisbanded {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Team has been disbanded!", nil)
	}

	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ? AND is_deleted = ?", team.ID, false).Count(&memberCount)
	if int(memberCount) >= team.MaxMembers {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Team is full!", nil)
	}

	member := models.TeamMember{
		TeamID:     team.ID,
		UserID:     user.ID,
		RoleInTeam: "member",
		JoinedAt:   time.Now(),
	}
	if err := db.Create(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join team!", nil)
	}

	user.TeamID = &team.ID
	db.Save(user)

	services.Emit(services.TeamRoom(team.ID), "member-joined", fiber.Map{
		"teamId": team.ID,
		"userId": user.ID,
		"name":   user.Name,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined team successfully.", team)
}

// LeaveTeam removes the caller from their team. The leader cannot leave
// while other members remain.
func LeaveTeam(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	if user.TeamID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are not in a team!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", *user.TeamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ? AND is_deleted = ?", team.ID, false).Count(&memberCount)

	if team.LeaderID == user.ID && memberCount > 1 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transfer leadership before leaving the team!", nil)
	}

	db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_deleted = ?", team.ID, user.ID, false).
		Update("is_deleted", true)

	user.TeamID = nil
	db.Save(user)

	if memberCount <= 1 {
		team.Status = models.TeamStatusDisbanded
		db.Save(&team)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Left team successfully.", nil)
}

// AssignMentor attaches a mentor to a team. Admin tier only.
func AssignMentor(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	reqData := new(struct {
		MentorID uint `json:"mentorId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", teamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	var mentor models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", reqData.MentorID, models.RoleMentor, false).First(&mentor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mentor not found!", nil)
	}

	team.MentorID = &mentor.ID
	if team.Status == models.TeamStatusForming {
		team.Status = models.TeamStatusActive
	}
	if err := db.Save(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign mentor!", nil)
	}

	services.Emit(services.TeamRoom(team.ID), services.EventMentorAssigned, fiber.Map{
		"teamId":     team.ID,
		"mentorId":   mentor.ID,
		"mentorName": mentor.Name,
	})
	services.EmitToUser(mentor.ID, services.EventMentorAssigned, fiber.Map{"teamId": team.ID, "teamName": team.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor assigned successfully.", team)
}

// GetTeam returns a team with its members.
func GetTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	var team models.Team
	if err := database.Database.Db.
		Preload("Members", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", teamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched.", team)
}

// ListTeams returns teams, optionally filtered by cohort or mentor.
func ListTeams(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if cohort := c.QueryInt("cohortYear"); cohort > 0 {
		db = db.Where("cohort_year = ?", cohort)
	}
	if mentorID := c.QueryInt("mentorId"); mentorID > 0 {
		db = db.Where("mentor_id = ?", mentorID)
	}

	var teams []models.Team
	if err := db.Order("name asc").Find(&teams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch teams!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teams fetched.", teams)
}
