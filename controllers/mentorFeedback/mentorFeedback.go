package mentorFeedbackController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback records a mentor's weekly feedback on their assigned team.
// One row per mentor/team/week; resubmitting the same week updates it.
func SubmitFeedback(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	reqData := new(struct {
		TeamID    uint    `json:"teamId"`
		Week      int     `json:"week"`
		Rating    float64 `json:"rating"`
		Strengths string  `json:"strengths"`
		Concerns  string  `json:"concerns"`
		Remarks   string  `json:"remarks"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.TeamID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Team id is required!", nil)
	}
	if reqData.Rating < 0 || reqData.Rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 0 and 5!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TeamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	if mentor.Role == models.RoleMentor && (team.MentorID == nil || *team.MentorID != mentor.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only review teams assigned to you!", nil)
	}

	var feedback models.MentorFeedback
	err := db.Where("mentor_id = ? AND team_id = ? AND week = ? AND is_deleted = ?",
		mentor.ID, team.ID, reqData.Week, false).First(&feedback).Error
	if err != nil {
		feedback = models.MentorFeedback{
			MentorID: mentor.ID,
			TeamID:   team.ID,
			Week:     reqData.Week,
		}
	}

	feedback.Rating = reqData.Rating
	feedback.Strengths = reqData.Strengths
	feedback.Concerns = reqData.Concerns
	feedback.Remarks = reqData.Remarks

	if err := db.Save(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback saved.", feedback)
}

// GetTeamFeedback lists a team's feedback history. Students on the team,
// the assigned mentor and staff may read it.
func GetTeamFeedback(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	teamID, err := c.ParamsInt("teamId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", teamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	if user.Role == models.RoleStudent && (user.TeamID == nil || *user.TeamID != team.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own team's feedback!", nil)
	}

	var feedbacks []models.MentorFeedback
	if err := db.Where("team_id = ? AND is_deleted = ?", team.ID, false).
		Order("week asc").Find(&feedbacks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	var meanRating float64
	if len(feedbacks) > 0 {
		for _, fb := range feedbacks {
			meanRating += fb.Rating
		}
		meanRating /= float64(len(feedbacks))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched.", fiber.Map{
		"feedback":   feedbacks,
		"meanRating": meanRating,
	})
}

// ListMentorFeedback lists everything the calling mentor has written.
func ListMentorFeedback(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	var feedbacks []models.MentorFeedback
	if err := database.Database.Db.
		Where("mentor_id = ? AND is_deleted = ?", mentor.ID, false).
		Order("team_id asc, week asc").Find(&feedbacks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched.", feedbacks)
}
