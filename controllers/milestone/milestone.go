package milestoneController

import (
	"encoding/json"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// revertIfPublished force-reverts a published chain to editing before a
// structural child change lands. Staleness must never be silently exposed
// to students; the caller signals requiresRepublish back to the client.
func revertIfPublished(db *gorm.DB, chain *models.MilestoneChain, editorID uint) (bool, error) {
	if chain.Status != models.ChainStatusPublished {
		return false, nil
	}
	chain.Status = models.ChainStatusEditing
	touchEditor(chain, editorID)
	if err := db.Save(chain).Error; err != nil {
		return false, err
	}
	return true, nil
}

// normalizeQuestions assigns ids and default points to embedded questions.
func normalizeQuestions(questions []models.Question) datatypes.JSON {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		if questions[i].Points == 0 {
			questions[i].Points = 1
		}
	}
	raw, _ := json.Marshal(questions)
	return datatypes.JSON(raw)
}

type milestoneRequest struct {
	Name         string                         `json:"name"`
	Description  string                         `json:"description"`
	Type         string                         `json:"type"`
	StartDate    time.Time                      `json:"startDate"`
	EndDate      time.Time                      `json:"endDate"`
	OrderIndex   *int                           `json:"orderIndex"`
	Questions    []models.Question              `json:"questions"`
	Duration     int                            `json:"duration"`
	PassingScore float64                        `json:"passingScore"`
	Requirements *models.SubmissionRequirements `json:"requirements"`
}

// CreateMilestone inserts a milestone under a chain. If the chain is
// currently published it is reverted to editing first and the response
// carries requiresRepublish: true.
func CreateMilestone(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	chainID, err := c.ParamsInt("chainId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	var reqData milestoneRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if reqData.Name == "" {
		errors["name"] = "Milestone name is required!"
	}
	switch reqData.Type {
	case models.MilestoneTypeAssignment, models.MilestoneTypeQuiz, models.MilestoneTypeExam,
		models.MilestoneTypeProject, models.MilestoneTypeTask:
	default:
		errors["type"] = "Unknown milestone type!"
	}
	if !reqData.EndDate.IsZero() && reqData.EndDate.Before(reqData.StartDate) {
		errors["endDate"] = "End date must not be before start date!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	// Order index defaults to next free; explicit values must be unique
	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
		var clash int64
		db.Model(&models.Milestone{}).
			Where("chain_id = ? AND order_index = ? AND is_deleted = ?", chain.ID, orderIndex, false).
			Count(&clash)
		if clash > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order index already in use within this chain!", nil)
		}
	} else {
		var maxIndex int
		db.Model(&models.Milestone{}).
			Where("chain_id = ? AND is_deleted = ?", chain.ID, false).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)
		orderIndex = maxIndex + 1
	}

	requiresRepublish, err := revertIfPublished(db, &chain, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chain state!", nil)
	}

	milestone := models.Milestone{
		ChainID:      chain.ID,
		Name:         reqData.Name,
		Description:  reqData.Description,
		Type:         reqData.Type,
		StartDate:    reqData.StartDate,
		EndDate:      reqData.EndDate,
		OrderIndex:   orderIndex,
		Status:       models.MilestoneStatusDraft,
		Duration:     reqData.Duration,
		PassingScore: reqData.PassingScore,
		CreatedBy:    user.ID,
	}
	if len(reqData.Questions) > 0 {
		milestone.Questions = normalizeQuestions(reqData.Questions)
	}
	if reqData.Requirements != nil {
		raw, _ := json.Marshal(reqData.Requirements)
		milestone.Requirements = datatypes.JSON(raw)
	}

	if err := db.Create(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create milestone!", nil)
	}

	refreshChainCounters(db, &chain)
	db.Save(&chain)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Milestone created.", fiber.Map{
		"milestone":         milestone,
		"requiresRepublish": requiresRepublish,
	})
}

// UpdateMilestone patches a milestone. The same revert-and-flag rule
// applies; additionally, while the parent chain was published, a date change
// must leave the start date at least one full day in the future so a live
// window students may be acting on cannot be moved under them.
func UpdateMilestone(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	milestoneID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	db := database.Database.Db

	var milestone models.Milestone
	if err := db.Where("id = ? AND is_deleted = ?", milestoneID, false).First(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", milestone.ChainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent chain not found!", nil)
	}

	var reqData milestoneRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	chainWasPublished := chain.Status == models.ChainStatusPublished

	if chainWasPublished && !reqData.StartDate.IsZero() && !reqData.StartDate.Equal(milestone.StartDate) {
		if reqData.StartDate.Before(time.Now().Add(24 * time.Hour)) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"Start date of a published milestone must be at least one day in the future!", nil)
		}
	}

	if reqData.OrderIndex != nil && *reqData.OrderIndex != milestone.OrderIndex {
		var clash int64
		db.Model(&models.Milestone{}).
			Where("chain_id = ? AND order_index = ? AND id != ? AND is_deleted = ?",
				chain.ID, *reqData.OrderIndex, milestone.ID, false).
			Count(&clash)
		if clash > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order index already in use within this chain!", nil)
		}
		milestone.OrderIndex = *reqData.OrderIndex
	}

	requiresRepublish, err := revertIfPublished(db, &chain, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chain state!", nil)
	}

	if reqData.Name != "" {
		milestone.Name = reqData.Name
	}
	if reqData.Description != "" {
		milestone.Description = reqData.Description
	}
	if !reqData.StartDate.IsZero() {
		milestone.StartDate = reqData.StartDate
	}
	if !reqData.EndDate.IsZero() {
		milestone.EndDate = reqData.EndDate
	}
	if milestone.EndDate.Before(milestone.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must not be before start date!", nil)
	}
	if reqData.Duration > 0 {
		milestone.Duration = reqData.Duration
	}
	if reqData.PassingScore > 0 {
		milestone.PassingScore = reqData.PassingScore
	}
	if len(reqData.Questions) > 0 {
		milestone.Questions = normalizeQuestions(reqData.Questions)
	}
	if reqData.Requirements != nil {
		raw, _ := json.Marshal(reqData.Requirements)
		milestone.Requirements = datatypes.JSON(raw)
	}

	// Edits demote the milestone back to draft until the next publish
	if chainWasPublished {
		milestone.Status = models.MilestoneStatusDraft
	}

	if err := db.Save(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update milestone!", nil)
	}

	refreshChainCounters(db, &chain)
	db.Save(&chain)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestone updated.", fiber.Map{
		"milestone":         milestone,
		"requiresRepublish": requiresRepublish,
	})
}

// DeleteMilestone removes a milestone that no student progress record
// references yet.
func DeleteMilestone(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	milestoneID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	db := database.Database.Db

	var milestone models.Milestone
	if err := db.Where("id = ? AND is_deleted = ?", milestoneID, false).First(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	var refCount int64
	db.Model(&models.StudentMilestone{}).
		Where("milestone_id = ? AND is_deleted = ?", milestone.ID, false).
		Count(&refCount)
	if refCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete milestone: student progress records exist!", nil)
	}

	var chain models.MilestoneChain
	if err := db.Where("id = ?", milestone.ChainID).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent chain not found!", nil)
	}

	requiresRepublish, err := revertIfPublished(db, &chain, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chain state!", nil)
	}

	milestone.IsDeleted = true
	if err := db.Save(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete milestone!", nil)
	}

	refreshChainCounters(db, &chain)
	db.Save(&chain)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestone deleted.", fiber.Map{
		"requiresRepublish": requiresRepublish,
	})
}

// GetMilestone returns one milestone. Students never see draft milestones
// or embedded correct answers.
func GetMilestone(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	milestoneID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	var milestone models.Milestone
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", milestoneID, false).First(&milestone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	if !user.IsStaff() {
		if milestone.Status != models.MilestoneStatusPublished {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
		}
		milestone.Questions = stripCorrectAnswers(milestone.Questions)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestone fetched.", milestone)
}

// stripCorrectAnswers blanks the answer key before questions reach a
// student client.
func stripCorrectAnswers(raw datatypes.JSON) datatypes.JSON {
	if len(raw) == 0 {
		return raw
	}
	var questions []models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return raw
	}
	for i := range questions {
		questions[i].CorrectAnswer = ""
	}
	out, _ := json.Marshal(questions)
	return datatypes.JSON(out)
}
