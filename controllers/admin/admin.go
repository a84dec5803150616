package adminController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"esd/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListPendingUsers returns accounts awaiting approval.
func ListPendingUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.
		Where("approval_status = ? AND is_deleted = ?", models.ApprovalPending, false).
		Order("created_at asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending users fetched.", users)
}

// ApproveUser approves or rejects a pending account.
func ApproveUser(c *fiber.Ctx) error {
	admin := c.Locals("currentUser").(*models.User)

	userID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Approve bool `json:"approve"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.ApprovalStatus != models.ApprovalPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User has already been processed!", nil)
	}

	when := time.Now()
	if reqData.Approve {
		user.ApprovalStatus = models.ApprovalApproved
	} else {
		user.ApprovalStatus = models.ApprovalRejected
	}
	user.ApprovedBy = &admin.ID
	user.ApprovedAt = &when

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	utils.SendApprovalEmail(user.Email, user.Name, reqData.Approve)
	if reqData.Approve {
		services.EmitToUser(user.ID, services.EventUserApproved, fiber.Map{"userId": user.ID})
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User approval updated.", user)
}

// DeactivateUser disables an account without deleting its rows.
func DeactivateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsActive = false
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deactivated.", nil)
}

// UpdateUserRole changes a user's role. Super admin only (enforced by route
// middleware with the manage-roles action).
func UpdateUserRole(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	switch reqData.Role {
	case models.RoleStudent, models.RoleMentor, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown role!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if reqData.Role != models.RoleStudent {
		// Staff accounts do not sit in the approval queue
		user.ApprovalStatus = models.ApprovalApproved
	}
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", user)
}

// ListUsers returns users filtered by role/approval status.
func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}
	if status := c.Query("approvalStatus"); status != "" {
		db = db.Where("approval_status = ?", status)
	}
	if cohort := c.QueryInt("cohortYear"); cohort > 0 {
		db = db.Where("cohort_year = ?", cohort)
	}

	var users []models.User
	if err := db.Order("name asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched.", users)
}

// DashboardStats aggregates platform-wide counters for the admin dashboard.
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalMentors, pendingApprovals int64
	var totalTeams, totalEvents, totalChains, activeSchedules int64

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleMentor, false).Count(&totalMentors)
	db.Model(&models.User{}).Where("approval_status = ? AND is_deleted = ?", models.ApprovalPending, false).Count(&pendingApprovals)
	db.Model(&models.Team{}).Where("is_deleted = ?", false).Count(&totalTeams)
	db.Model(&models.Event{}).Where("is_deleted = ?", false).Count(&totalEvents)
	db.Model(&models.MilestoneChain{}).Where("is_deleted = ?", false).Count(&totalChains)
	db.Model(&models.ExamSchedule{}).Where("status = ? AND is_deleted = ?", models.ScheduleStatusActive, false).Count(&activeSchedules)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched.", fiber.Map{
		"totalStudents":    totalStudents,
		"totalMentors":     totalMentors,
		"pendingApprovals": pendingApprovals,
		"totalTeams":       totalTeams,
		"totalEvents":      totalEvents,
		"totalChains":      totalChains,
		"activeSchedules":  activeSchedules,
	})
}
