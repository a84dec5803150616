package milestoneController

import (
	"encoding/json"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"esd/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// touchEditor records the acting user in the chain's collaboration list.
func touchEditor(chain *models.MilestoneChain, userID uint) {
	var editors []models.ChainEditor
	if len(chain.Editors) > 0 {
		json.Unmarshal(chain.Editors, &editors)
	}

	found := false
	for i := range editors {
		if editors[i].UserID == userID {
			editors[i].LastEditedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		editors = append(editors, models.ChainEditor{UserID: userID, LastEditedAt: time.Now()})
	}

	raw, _ := json.Marshal(editors)
	chain.Editors = datatypes.JSON(raw)
}

// refreshChainCounters recomputes the milestone counters from the live
// child list. Counters are derived, never hand-maintained.
func refreshChainCounters(db *gorm.DB, chain *models.MilestoneChain) {
	var total, published int64
	db.Model(&models.Milestone{}).Where("chain_id = ? AND is_deleted = ?", chain.ID, false).Count(&total)
	db.Model(&models.Milestone{}).Where("chain_id = ? AND status = ? AND is_deleted = ?", chain.ID, models.MilestoneStatusPublished, false).Count(&published)
	chain.TotalMilestones = int(total)
	chain.PublishedMilestones = int(published)
}

// CreateChain creates a chain in editing state with the creator as first
// collaborator.
func CreateChain(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	var reqData models.MilestoneChain
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if reqData.Name == "" {
		errors["name"] = "Chain name is required!"
	}
	if reqData.AcademicYear == "" {
		errors["academicYear"] = "Academic year is required!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	chain := models.MilestoneChain{
		Name:         reqData.Name,
		Description:  reqData.Description,
		AcademicYear: reqData.AcademicYear,
		CohortYear:   reqData.CohortYear,
		StartDate:    reqData.StartDate,
		EndDate:      reqData.EndDate,
		Status:       models.ChainStatusEditing,
		CreatedBy:    user.ID,
	}
	touchEditor(&chain, user.ID)

	if err := database.Database.Db.Create(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chain!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Milestone chain created.", chain)
}

// UpdateChain patches chain metadata. Editing the chain while published
// reverts it to editing, forcing an explicit republish.
func UpdateChain(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	chainID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	var reqData models.MilestoneChain
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	requiresRepublish := false
	if chain.Status == models.ChainStatusPublished {
		chain.Status = models.ChainStatusEditing
		requiresRepublish = true
	}

	if reqData.Name != "" {
		chain.Name = reqData.Name
	}
	if reqData.Description != "" {
		chain.Description = reqData.Description
	}
	if !reqData.StartDate.IsZero() {
		chain.StartDate = reqData.StartDate
	}
	if !reqData.EndDate.IsZero() {
		chain.EndDate = reqData.EndDate
	}
	touchEditor(&chain, user.ID)

	if err := db.Save(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chain!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain updated.", fiber.Map{
		"chain":             chain,
		"requiresRepublish": requiresRepublish,
	})
}

// PublishChain publishes the chain and all child milestones in one
// transaction: either both succeed or the chain stays in editing.
func PublishChain(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	chainID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	if chain.Status == models.ChainStatusPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Chain is already published!", nil)
	}

	refreshChainCounters(db, &chain)
	if chain.TotalMilestones == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish empty chain. Add at least one milestone first.", nil)
	}

	publishedAt := time.Now()
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Milestone{}).
			Where("chain_id = ? AND is_deleted = ?", chain.ID, false).
			Update("status", models.MilestoneStatusPublished).Error; err != nil {
			return err
		}

		chain.Status = models.ChainStatusPublished
		chain.PublishedBy = &user.ID
		chain.PublishedAt = &publishedAt
		chain.PublishedMilestones = chain.TotalMilestones
		touchEditor(&chain, user.ID)
		return tx.Save(&chain).Error
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish chain!", nil)
	}

	services.Emit(services.GlobalRoom(), services.EventChainPublished, fiber.Map{
		"chainId": chain.ID,
		"name":    chain.Name,
	})

	// Mail every approved student of the cohort
	go func(chain models.MilestoneChain) {
		var students []models.User
		q := database.Database.Db.Where("role = ? AND approval_status = ? AND is_deleted = ?",
			models.RoleStudent, models.ApprovalApproved, false)
		if chain.CohortYear > 0 {
			q = q.Where("cohort_year = ?", chain.CohortYear)
		}
		if err := q.Find(&students).Error; err != nil {
			return
		}
		for _, s := range students {
			utils.SendChainPublishedEmail(s.Email, s.Name, chain.Name)
		}
	}(chain)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain published successfully.", chain)
}

// ArchiveChain moves a published chain to archived.
func ArchiveChain(c *fiber.Ctx) error {
	chainID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	if chain.Status != models.ChainStatusPublished {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only published chains can be archived!", nil)
	}

	chain.Status = models.ChainStatusArchived
	if err := db.Save(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive chain!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain archived.", chain)
}

// DeleteChain cascades delete to child milestones. Blocked while any
// student progress record references a child milestone.
func DeleteChain(c *fiber.Ctx) error {
	chainID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	var refCount int64
	db.Model(&models.StudentMilestone{}).
		Joins("JOIN milestones ON milestones.id = student_milestones.milestone_id").
		Where("milestones.chain_id = ? AND student_milestones.is_deleted = ?", chain.ID, false).
		Count(&refCount)
	if refCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete chain: student progress records exist!", nil)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Milestone{}).
			Where("chain_id = ?", chain.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		chain.IsDeleted = true
		return tx.Save(&chain).Error
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chain!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain deleted.", nil)
}

// ListChains returns chains. Non-staff callers only see published ones.
func ListChains(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	db := database.Database.Db.Where("is_deleted = ?", false)
	if !user.IsStaff() {
		db = db.Where("status = ?", models.ChainStatusPublished)
	}
	if year := c.Query("academicYear"); year != "" {
		db = db.Where("academic_year = ?", year)
	}

	var chains []models.MilestoneChain
	if err := db.Order("start_date asc").Find(&chains).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chains!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chains fetched.", chains)
}

// GetChain returns a chain with its milestone list filtered for the
// caller's role.
func GetChain(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	chainID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	db := database.Database.Db

	var chain models.MilestoneChain
	if err := db.Where("id = ? AND is_deleted = ?", chainID, false).First(&chain).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	if !user.IsStaff() && chain.Status != models.ChainStatusPublished {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chain not found!", nil)
	}

	q := db.Where("chain_id = ? AND is_deleted = ?", chain.ID, false)
	if !user.IsStaff() {
		q = q.Where("status = ?", models.MilestoneStatusPublished)
	}

	var milestones []models.Milestone
	if err := q.Order("order_index asc").Find(&milestones).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch milestones!", nil)
	}

	if user.Role == models.RoleStudent {
		completed := completedMilestoneIDs(db, user.ID, milestones)
		views := VisibleMilestonesForStudent(milestones, completed, time.Now())
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain fetched.", fiber.Map{
			"chain":      chain,
			"milestones": views,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chain fetched.", fiber.Map{
		"chain":      chain,
		"milestones": milestones,
	})
}

// completedMilestoneIDs collects the milestone ids the student has already
// completed, for deriving lock state.
func completedMilestoneIDs(db *gorm.DB, studentID uint, milestones []models.Milestone) map[uint]bool {
	ids := make([]uint, 0, len(milestones))
	for _, m := range milestones {
		ids = append(ids, m.ID)
	}

	completed := make(map[uint]bool)
	if len(ids) == 0 {
		return completed
	}

	var rows []models.StudentMilestone
	db.Where("student_id = ? AND milestone_id IN ? AND status = ? AND is_deleted = ?",
		studentID, ids, models.ProgressCompleted, false).Find(&rows)
	for _, row := range rows {
		completed[row.MilestoneID] = true
	}
	return completed
}

// MilestoneView is a milestone plus derived lock state for a student.
type MilestoneView struct {
	models.Milestone
	IsLocked bool `json:"isLocked"`
}

// VisibleMilestonesForStudent applies the drip-feed rule: students see all
// past milestones, the currently-active one, and at most one upcoming
// milestone shown locked. Lock state is derived, never stored.
func VisibleMilestonesForStudent(milestones []models.Milestone, completed map[uint]bool, at time.Time) []MilestoneView {
	views := make([]MilestoneView, 0, len(milestones))
	upcomingShown := false

	for _, m := range milestones {
		locked := at.Before(m.StartDate) && !completed[m.ID]

		switch {
		case !m.EndDate.After(at):
			// Past milestone, always visible
		case !m.StartDate.After(at):
			// Currently active
		case !upcomingShown:
			// First upcoming milestone, shown locked
			upcomingShown = true
		default:
			continue
		}

		views = append(views, MilestoneView{Milestone: m, IsLocked: locked})
	}
	return views
}
