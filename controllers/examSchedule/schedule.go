package examScheduleController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type scheduleRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	ExamType        string `json:"examType"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"endDate" validate:"required,datetime=2006-01-02"`
	DefaultDuration int    `json:"defaultDuration" validate:"omitempty,min=5,max=240"`
	AssignmentMode  string `json:"assignmentMode" validate:"omitempty,oneof=random manual"`

	AllowMentorReschedule *bool `json:"allowMentorReschedule"`
	RequireConfirmation   *bool `json:"requireConfirmation"`
}

// refreshScheduleSummary recomputes the slot counters from the live slot
// list. Summary statistics are derived on every save, never hand-maintained.
func refreshScheduleSummary(db *gorm.DB, schedule *models.ExamSchedule) error {
	var total, scheduled, completed int64

	base := db.Model(&models.ExamSlot{}).Where("schedule_id = ? AND is_deleted = ?", schedule.ID, false)
	if err := base.Count(&total).Error; err != nil {
		return err
	}
	db.Model(&models.ExamSlot{}).
		Where("schedule_id = ? AND is_deleted = ? AND team_id IS NOT NULL AND status IN ?",
			schedule.ID, false, []string{models.SlotStatusScheduled, models.SlotStatusRescheduled}).
		Count(&scheduled)
	db.Model(&models.ExamSlot{}).
		Where("schedule_id = ? AND is_deleted = ? AND status = ?", schedule.ID, false, models.SlotStatusCompleted).
		Count(&completed)

	schedule.TotalSlots = int(total)
	schedule.ScheduledSlots = int(scheduled)
	schedule.CompletedSlots = int(completed)
	schedule.PendingSlots = int(total - scheduled - completed)

	return db.Save(schedule).Error
}

// assignedTeamIDs collects every team currently holding a slot anywhere in
// the schedule, across legacy and per-mentor slots. This backs the
// one-slot-per-team invariant checked before every insert and manual edit.
func assignedTeamIDs(db *gorm.DB, scheduleID uint) map[uint]bool {
	var slots []models.ExamSlot
	db.Where("schedule_id = ? AND is_deleted = ? AND team_id IS NOT NULL", scheduleID, false).Find(&slots)

	assigned := make(map[uint]bool, len(slots))
	for _, s := range slots {
		if s.TeamID != nil && s.Status != models.SlotStatusCancelled {
			assigned[*s.TeamID] = true
		}
	}
	return assigned
}

// CreateSchedule creates a schedule in draft. Admin tier only.
func CreateSchedule(c *fiber.Ctx) error {
	admin := c.Locals("currentUser").(*models.User)

	var reqData scheduleRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(&reqData); err != nil {
		errors := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
		}
		return middleware.ValidationErrorResponse(c, errors)
	}

	startDate, endDate, perr := parseDateRange(reqData.StartDate, reqData.EndDate)
	if perr != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, perr.Error(), nil)
	}

	schedule := models.ExamSchedule{
		Title:           reqData.Title,
		Description:     reqData.Description,
		ExamType:        reqData.ExamType,
		StartDate:       startDate,
		EndDate:         endDate,
		DefaultDuration: reqData.DefaultDuration,
		Status:          models.ScheduleStatusDraft,
		AssignmentMode:  reqData.AssignmentMode,
		CreatedBy:       admin.ID,
	}
	if schedule.DefaultDuration == 0 {
		schedule.DefaultDuration = 30
	}
	if schedule.AssignmentMode == "" {
		schedule.AssignmentMode = models.AssignmentModeRandom
	}
	if reqData.AllowMentorReschedule != nil {
		schedule.AllowMentorReschedule = *reqData.AllowMentorReschedule
	} else {
		schedule.AllowMentorReschedule = true
	}
	if reqData.RequireConfirmation != nil {
		schedule.RequireConfirmation = *reqData.RequireConfirmation
	}

	if err := database.Database.Db.Create(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create schedule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam schedule created.", schedule)
}

// UpdateSchedule patches schedule metadata while it is still draft/active.
func UpdateSchedule(c *fiber.Ctx) error {
	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	if schedule.Status == models.ScheduleStatusCompleted || schedule.Status == models.ScheduleStatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Schedule is no longer editable!", nil)
	}

	var reqData scheduleRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		schedule.Title = reqData.Title
	}
	if reqData.Description != "" {
		schedule.Description = reqData.Description
	}
	if reqData.StartDate != "" && reqData.EndDate != "" {
		startDate, endDate, perr := parseDateRange(reqData.StartDate, reqData.EndDate)
		if perr != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, perr.Error(), nil)
		}
		schedule.StartDate = startDate
		schedule.EndDate = endDate
	}
	if reqData.DefaultDuration > 0 {
		schedule.DefaultDuration = reqData.DefaultDuration
	}
	if reqData.AllowMentorReschedule != nil {
		schedule.AllowMentorReschedule = *reqData.AllowMentorReschedule
	}
	if reqData.RequireConfirmation != nil {
		schedule.RequireConfirmation = *reqData.RequireConfirmation
	}

	if err := db.Save(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update schedule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule updated.", schedule)
}

// ActivateSchedule moves a draft schedule to active.
func ActivateSchedule(c *fiber.Ctx) error {
	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	if schedule.Status != models.ScheduleStatusDraft {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only draft schedules can be activated!", nil)
	}

	schedule.Status = models.ScheduleStatusActive
	if err := db.Save(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate schedule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule activated.", schedule)
}

// DeleteSchedule soft-deletes a schedule and its slots. Admin tier only.
func DeleteSchedule(c *fiber.Ctx) error {
	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ExamSlot{}).Where("schedule_id = ?", schedule.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.MentorSchedule{}).Where("schedule_id = ?", schedule.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		schedule.IsDeleted = true
		return tx.Save(&schedule).Error
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete schedule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule deleted.", nil)
}

// GetSchedule returns a schedule with slots and mentor configurations.
func GetSchedule(c *fiber.Ctx) error {
	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	var schedule models.ExamSchedule
	if err := database.Database.Db.
		Preload("Slots", "is_deleted = ?", false).
		Preload("MentorSchedules", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", scheduleID, false).
		First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule fetched.", schedule)
}

// ListSchedules lists schedules, optionally filtered by status.
func ListSchedules(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var schedules []models.ExamSchedule
	if err := db.Order("start_date asc").Find(&schedules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch schedules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedules fetched.", schedules)
}

// GetMentorSlots returns the calling mentor's slots in a schedule.
func GetMentorSlots(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	var slots []models.ExamSlot
	if err := database.Database.Db.
		Where("schedule_id = ? AND mentor_id = ? AND is_deleted = ?", scheduleID, mentor.ID, false).
		Order("scheduled_date asc, start_time asc").
		Find(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots fetched.", slots)
}
