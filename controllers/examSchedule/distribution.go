package examScheduleController

import (
	"encoding/json"
	"errors"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Working day bounds for global distribution.
const (
	dayStartMinutes = 9 * 60  // 09:00
	dayEndMinutes   = 18 * 60 // 18:00
	slotBuffer      = 10      // minutes between consecutive slots
)

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid start date, expected YYYY-MM-DD!")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid end date, expected YYYY-MM-DD!")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.New("End date must not be before start date!")
	}
	return startDate, endDate, nil
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotPlan is one planned (mentor, team, time) placement.
type SlotPlan struct {
	MentorID  uint
	TeamID    uint
	Date      time.Time
	StartTime string
}

// LayoutGlobalSlots walks teams in listing order, round-robin-assigning
// each to the next mentor and placing it at a running clock that starts at
// 09:00 and advances by duration plus a 10-minute buffer. Once the clock
// would reach or pass 18:00 it resets to 09:00 on the next day.
func LayoutGlobalSlots(mentorIDs, teamIDs []uint, startDate time.Time, duration int) []SlotPlan {
	if len(mentorIDs) == 0 || len(teamIDs) == 0 {
		return nil
	}

	plans := make([]SlotPlan, 0, len(teamIDs))
	clock := dayStartMinutes
	date := startDate

	for i, teamID := range teamIDs {
		if clock >= dayEndMinutes {
			clock = dayStartMinutes
			date = date.AddDate(0, 0, 1)
		}

		plans = append(plans, SlotPlan{
			MentorID:  mentorIDs[i%len(mentorIDs)],
			TeamID:    teamID,
			Date:      date,
			StartTime: FormatClock(clock),
		})

		clock += duration + slotBuffer
	}
	return plans
}

// WindowBudget holds the capacity arithmetic for one mentor declaration.
type WindowBudget struct {
	TotalTimeNeeded int `json:"totalTimeNeeded"`
	AvailableTime   int `json:"availableTime"`
}

// CheckMentorWindow validates that the declared team count fits the day
// window: totalTeams*teamDuration + (totalTeams-1)*bufferTime must not
// exceed the window. The computed shortfall is returned either way so a
// rejection can report exact numbers.
func CheckMentorWindow(totalTeams, teamDuration, bufferTime int, startTime, endTime string) (WindowBudget, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return WindowBudget{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return WindowBudget{}, err
	}
	if end <= start {
		return WindowBudget{}, errors.New("end time must be after start time")
	}
	if totalTeams <= 0 {
		return WindowBudget{}, errors.New("total teams must be positive")
	}

	budget := WindowBudget{
		TotalTimeNeeded: totalTeams*teamDuration + (totalTeams-1)*bufferTime,
		AvailableTime:   end - start,
	}
	if budget.TotalTimeNeeded > budget.AvailableTime {
		return budget, errors.New("declared teams do not fit the time window")
	}
	return budget, nil
}

// RandomDistributeTeams performs the legacy one-shot global distribution:
// existing slots are cleared and every team is laid out round-robin across
// all mentors inside one transaction.
func RandomDistributeTeams(c *fiber.Ctx) error {
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

	var mentors []models.User
	db.Where("role = ? AND is_active = ? AND is_deleted = ?", models.RoleMentor, true, false).
		Order("id asc").Find(&mentors)
	if len(mentors) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No mentors available for distribution!", nil)
	}

	var teams []models.Team
	db.Where("is_deleted = ? AND status != ?", false, models.TeamStatusDisbanded).
		Order("id asc").Find(&teams)
	if len(teams) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No teams available for distribution!", nil)
	}

	mentorIDs := make([]uint, len(mentors))
	for i, m := range mentors {
		mentorIDs[i] = m.ID
	}
	teamIDs := make([]uint, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	plans := LayoutGlobalSlots(mentorIDs, teamIDs, schedule.StartDate, schedule.DefaultDuration)

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Clear-then-repopulate runs as one unit
		if err := tx.Model(&models.ExamSlot{}).
			Where("schedule_id = ?", schedule.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		for _, plan := range plans {
			teamID := plan.TeamID
			slot := models.ExamSlot{
				ScheduleID:    schedule.ID,
				MentorID:      plan.MentorID,
				TeamID:        &teamID,
				ScheduledDate: plan.Date,
				StartTime:     plan.StartTime,
				Duration:      schedule.DefaultDuration,
				Status:        models.SlotStatusScheduled,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to distribute teams!", nil)
	}

	refreshScheduleSummary(db, &schedule)

	services.EmitToAdmins(services.EventExamScheduled, fiber.Map{
		"scheduleId": schedule.ID,
		"slotCount":  len(plans),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teams distributed across mentors.", fiber.Map{
		"schedule":  schedule,
		"slotCount": len(plans),
	})
}

type mentorConfigRequest struct {
	TotalTeams   int    `json:"totalTeams" validate:"required,min=1"`
	TeamDuration int    `json:"teamDuration" validate:"required,min=5,max=240"`
	BufferTime   int    `json:"bufferTime" validate:"min=0,max=120"`
	ExamDate     string `json:"examDate" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	Venue        string `json:"venue"`
	MeetingLink  string `json:"meetingLink"`
}

// ConfigureMentorSchedule declares or updates the calling mentor's capacity
// within a schedule. The window budget is validated up front and the exact
// shortfall reported on rejection.
func ConfigureMentorSchedule(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	var reqData mentorConfigRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(&reqData); err != nil {
		fieldErrors := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
		}
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	examDate, err := time.Parse("2006-01-02", reqData.ExamDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam date!", nil)
	}
	if examDate.Before(schedule.StartDate) || examDate.After(schedule.EndDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam date must fall within the schedule window!", nil)
	}

	budget, berr := CheckMentorWindow(reqData.TotalTeams, reqData.TeamDuration, reqData.BufferTime, reqData.StartTime, reqData.EndTime)
	if berr != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Declared teams do not fit the time window!", budget)
	}

	var config models.MentorSchedule
	err = db.Where("schedule_id = ? AND mentor_id = ? AND is_deleted = ?", schedule.ID, mentor.ID, false).
		First(&config).Error
	if err == nil && config.IsScheduled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slots already generated. Clear them before reconfiguring!", nil)
	}
	if err != nil {
		config = models.MentorSchedule{ScheduleID: schedule.ID, MentorID: mentor.ID}
	}

	config.TotalTeams = reqData.TotalTeams
	config.TeamDuration = reqData.TeamDuration
	config.BufferTime = reqData.BufferTime
	config.ExamDate = examDate
	config.StartTime = reqData.StartTime
	config.EndTime = reqData.EndTime
	config.Venue = reqData.Venue
	config.MeetingLink = reqData.MeetingLink

	if err := db.Save(&config).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save mentor configuration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor schedule configured.", fiber.Map{
		"config": config,
		"budget": budget,
	})
}

// DistributeToMentorSlots draws the declared number of teams from the
// schedule-wide unassigned pool, shuffles them, and lays them out
// back-to-back within the mentor's declared window. Blocked once slots
// exist until explicitly cleared.
func DistributeToMentorSlots(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	var config models.MentorSchedule
	if err := db.Where("schedule_id = ? AND mentor_id = ? AND is_deleted = ?", schedule.ID, mentor.ID, false).
		First(&config).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Configure your schedule before distributing!", nil)
	}

	if config.IsScheduled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slots already generated. Clear them before re-distributing!", nil)
	}

	// Re-validate the budget; the config may predate a settings change
	budget, berr := CheckMentorWindow(config.TotalTeams, config.TeamDuration, config.BufferTime, config.StartTime, config.EndTime)
	if berr != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Declared teams do not fit the time window!", budget)
	}

	// Global unassigned pool: any team without a slot anywhere in this schedule
	assigned := assignedTeamIDs(db, schedule.ID)

	var teams []models.Team
	db.Where("is_deleted = ? AND status != ?", false, models.TeamStatusDisbanded).Order("id asc").Find(&teams)

	pool := make([]uint, 0, len(teams))
	for _, t := range teams {
		if !assigned[t.ID] {
			pool = append(pool, t.ID)
		}
	}

	if len(pool) < config.TotalTeams {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			fmt.Sprintf("Only %d unassigned teams available, %d requested!", len(pool), config.TotalTeams), nil)
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	picked := pool[:config.TotalTeams]

	startMinutes, _ := ParseClock(config.StartTime)

	txErr := db.Transaction(func(tx *gorm.DB) error {
		clock := startMinutes
		for _, teamID := range picked {
			id := teamID
			slot := models.ExamSlot{
				ScheduleID:       schedule.ID,
				MentorScheduleID: &config.ID,
				MentorID:         mentor.ID,
				TeamID:           &id,
				ScheduledDate:    config.ExamDate,
				StartTime:        FormatClock(clock),
				Duration:         config.TeamDuration,
				Venue:            config.Venue,
				MeetingLink:      config.MeetingLink,
				Status:           models.SlotStatusScheduled,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
			clock += config.TeamDuration + config.BufferTime
		}

		config.IsScheduled = true
		return tx.Save(&config).Error
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate slots!", nil)
	}

	refreshScheduleSummary(db, &schedule)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots generated for mentor.", fiber.Map{
		"assignedTeams": picked,
		"budget":        budget,
	})
}

// ClearMentorSlots removes the calling mentor's generated slots so the
// configuration can be re-run.
func ClearMentorSlots(c *fiber.Ctx) error {
	mentor := c.Locals("currentUser").(*models.User)

	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.ExamSchedule
	if err := db.Where("id = ? AND is_deleted = ?", scheduleID, false).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	var config models.MentorSchedule
	if err := db.Where("schedule_id = ? AND mentor_id = ? AND is_deleted = ?", schedule.ID, mentor.ID, false).
		First(&config).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mentor configuration not found!", nil)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ExamSlot{}).
			Where("mentor_schedule_id = ?", config.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		config.IsScheduled = false
		return tx.Save(&config).Error
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear slots!", nil)
	}

	refreshScheduleSummary(db, &schedule)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor slots cleared.", nil)
}

// ManualAssignTeam hand-places a team into an existing empty slot. The
// one-slot-per-team invariant is re-checked on every manual edit, not just
// on bulk distribution.
func ManualAssignTeam(c *fiber.Ctx) error {
	slotID, err := c.ParamsInt("slotId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slot id!", nil)
	}

	reqData := new(struct {
		TeamID uint `json:"teamId"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.TeamID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Team id is required!", nil)
	}

	db := database.Database.Db

	var slot models.ExamSlot
	if err := db.Where("id = ? AND is_deleted = ?", slotID, false).First(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
	}

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TeamID, false).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	assigned := assignedTeamIDs(db, slot.ScheduleID)
	if assigned[team.ID] && (slot.TeamID == nil || *slot.TeamID != team.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Team already holds a slot in this schedule!", nil)
	}

	slot.TeamID = &team.ID
	if err := db.Save(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign team!", nil)
	}

	var schedule models.ExamSchedule
	if err := db.First(&schedule, slot.ScheduleID).Error; err == nil {
		refreshScheduleSummary(db, &schedule)
	}

	services.Emit(services.TeamRoom(team.ID), services.EventExamScheduled, fiber.Map{
		"slotId":        slot.ID,
		"scheduledDate": slot.ScheduledDate,
		"startTime":     slot.StartTime,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team assigned to slot.", slot)
}

// ManualEditMentorSlot lets the owning mentor (or an admin) move a slot's
// team or time. Date must stay inside the parent schedule window and the
// team-uniqueness invariant is re-checked.
func ManualEditMentorSlot(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	slotID, err := c.ParamsInt("slotId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slot id!", nil)
	}

	reqData := new(struct {
		TeamID        *uint  `json:"teamId"`
		ScheduledDate string `json:"scheduledDate"`
		StartTime     string `json:"startTime"`
		Duration      int    `json:"duration"`
		Venue         string `json:"venue"`
		MeetingLink   string `json:"meetingLink"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var slot models.ExamSlot
	if err := db.Where("id = ? AND is_deleted = ?", slotID, false).First(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
	}

	var schedule models.ExamSchedule
	if err := db.First(&schedule, slot.ScheduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	// Mentors may only touch their own slots, and only when the schedule
	// settings allow it
	if user.Role == models.RoleMentor {
		if slot.MentorID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own slots!", nil)
		}
		if !schedule.AllowMentorReschedule {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Mentor rescheduling is disabled for this schedule!", nil)
		}
	}

	rescheduled := false

	if reqData.TeamID != nil {
		assigned := assignedTeamIDs(db, slot.ScheduleID)
		if assigned[*reqData.TeamID] && (slot.TeamID == nil || *slot.TeamID != *reqData.TeamID) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Team already holds a slot in this schedule!", nil)
		}
		slot.TeamID = reqData.TeamID
	}
	if reqData.ScheduledDate != "" {
		newDate, err := time.Parse("2006-01-02", reqData.ScheduledDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid scheduled date!", nil)
		}
		if newDate.Before(schedule.StartDate) || newDate.After(schedule.EndDate) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Slot date must fall within the schedule window!", nil)
		}
		slot.ScheduledDate = newDate
		rescheduled = true
	}
	if reqData.StartTime != "" {
		if _, err := ParseClock(reqData.StartTime); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start time!", nil)
		}
		slot.StartTime = reqData.StartTime
		rescheduled = true
	}
	if reqData.Duration > 0 {
		slot.Duration = reqData.Duration
	}
	if reqData.Venue != "" {
		slot.Venue = reqData.Venue
	}
	if reqData.MeetingLink != "" {
		slot.MeetingLink = reqData.MeetingLink
	}

	if rescheduled && slot.Status == models.SlotStatusScheduled {
		slot.Status = models.SlotStatusRescheduled
	}

	if err := db.Save(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update slot!", nil)
	}

	refreshScheduleSummary(db, &schedule)

	if rescheduled && slot.TeamID != nil {
		services.Emit(services.TeamRoom(*slot.TeamID), services.EventExamRescheduled, fiber.Map{
			"slotId":        slot.ID,
			"scheduledDate": slot.ScheduledDate,
			"startTime":     slot.StartTime,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot updated.", slot)
}

// CompleteSlot records the outcome of a finished slot. Owning mentor only.
func CompleteSlot(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	slotID, err := c.ParamsInt("slotId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slot id!", nil)
	}

	reqData := new(struct {
		Score    *float64 `json:"score"`
		Feedback string   `json:"feedback"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var slot models.ExamSlot
	if err := db.Where("id = ? AND is_deleted = ?", slotID, false).First(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
	}

	if user.Role == models.RoleMentor && slot.MentorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only complete your own slots!", nil)
	}
	if slot.TeamID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Slot has no team assigned!", nil)
	}
	if slot.Status == models.SlotStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slot is already completed!", nil)
	}

	slot.Status = models.SlotStatusCompleted
	slot.Score = reqData.Score
	slot.Feedback = reqData.Feedback

	if err := db.Save(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete slot!", nil)
	}

	var schedule models.ExamSchedule
	if err := db.First(&schedule, slot.ScheduleID).Error; err == nil {
		refreshScheduleSummary(db, &schedule)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot completed.", slot)
}

// ConfirmSlot records confirmation metadata on a slot when the schedule
// requires it.
func ConfirmSlot(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	slotID, err := c.ParamsInt("slotId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slot id!", nil)
	}

	reqData := new(struct {
		Note string `json:"note"`
	})
	c.BodyParser(reqData)

	db := database.Database.Db

	var slot models.ExamSlot
	if err := db.Where("id = ? AND is_deleted = ?", slotID, false).First(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
	}

	confirmation := models.SlotConfirmation{
		ConfirmedBy: user.ID,
		ConfirmedAt: time.Now(),
		Note:        reqData.Note,
	}
	raw, _ := json.Marshal(confirmation)
	slot.Confirmation = datatypes.JSON(raw)

	if err := db.Save(&slot).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm slot!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot confirmed.", slot)
}
