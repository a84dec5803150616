package examScheduleController

import (
	"bytes"
	"encoding/json"
	"esd/database"
	"esd/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSlotDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func setupSlotApp(user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("currentUser", user)
		return c.Next()
	})

	app.Patch("/slots/:slotId/assign", ManualAssignTeam)
	app.Patch("/slots/:slotId", ManualEditMentorSlot)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedScheduleWithSlots(t *testing.T, db *gorm.DB) (models.ExamSchedule, []models.Team, []models.ExamSlot) {
	t.Helper()

	schedule := models.ExamSchedule{
		Title:                 "End reviews",
		StartDate:             time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		DefaultDuration:       30,
		Status:                models.ScheduleStatusActive,
		AllowMentorReschedule: true,
		CreatedBy:             1,
	}
	require.NoError(t, db.Create(&schedule).Error)

	teams := make([]models.Team, 2)
	for i := range teams {
		teams[i] = models.Team{Name: fmt.Sprintf("Team %d", i+1), LeaderID: uint(i + 1), Status: models.TeamStatusActive}
		require.NoError(t, db.Create(&teams[i]).Error)
	}

	slots := make([]models.ExamSlot, 2)
	slots[0] = models.ExamSlot{
		ScheduleID:    schedule.ID,
		MentorID:      10,
		TeamID:        &teams[0].ID,
		ScheduledDate: schedule.StartDate,
		StartTime:     "09:00",
		Duration:      30,
		Status:        models.SlotStatusScheduled,
	}
	slots[1] = models.ExamSlot{
		ScheduleID:    schedule.ID,
		MentorID:      10,
		ScheduledDate: schedule.StartDate,
		StartTime:     "09:40",
		Duration:      30,
		Status:        models.SlotStatusScheduled,
	}
	for i := range slots {
		require.NoError(t, db.Create(&slots[i]).Error)
	}
	return schedule, teams, slots
}

func TestManualAssignRejectsDoubleBooking(t *testing.T) {
	db := setupSlotDB(t)
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin, ApprovalStatus: models.ApprovalApproved, IsActive: true}
	require.NoError(t, db.Create(admin).Error)
	app := setupSlotApp(admin)

	_, teams, slots := seedScheduleWithSlots(t, db)

	// Team 1 already holds slot 0, so placing it into slot 1 must conflict
	resp := postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d/assign", slots[1].ID),
		fiber.Map{"teamId": teams[0].ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A free team goes in cleanly
	resp = postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d/assign", slots[1].ID),
		fiber.Map{"teamId": teams[1].ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.ExamSlot
	require.NoError(t, db.First(&reloaded, slots[1].ID).Error)
	require.NotNil(t, reloaded.TeamID)
	assert.Equal(t, teams[1].ID, *reloaded.TeamID)
}

func TestManualEditRechecksTeamUniqueness(t *testing.T) {
	db := setupSlotDB(t)
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin, ApprovalStatus: models.ApprovalApproved, IsActive: true}
	require.NoError(t, db.Create(admin).Error)
	app := setupSlotApp(admin)

	_, teams, slots := seedScheduleWithSlots(t, db)

	teamID := teams[1].ID
	require.NoError(t, db.Model(&models.ExamSlot{}).Where("id = ?", slots[1].ID).Update("team_id", teamID).Error)

	// Moving slot 1 onto team 0 collides with slot 0's assignment
	resp := postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d", slots[1].ID),
		fiber.Map{"teamId": teams[0].ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Re-sending a slot's own team is not a collision
	resp = postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d", slots[1].ID),
		fiber.Map{"teamId": teams[1].ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMentorRescheduleMarksSlotAndStaysInWindow(t *testing.T) {
	db := setupSlotDB(t)
	mentor := &models.User{Name: "Mentor", Email: "mentor@example.com", Password: "x", Role: models.RoleMentor, ApprovalStatus: models.ApprovalApproved, IsActive: true}
	require.NoError(t, db.Create(mentor).Error)
	app := setupSlotApp(mentor)

	schedule, _, slots := seedScheduleWithSlots(t, db)

	require.NoError(t, db.Model(&models.ExamSlot{}).Where("id = ?", slots[0].ID).Update("mentor_id", mentor.ID).Error)

	// Dates outside the schedule window are rejected
	resp := postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d", slots[0].ID),
		fiber.Map{"scheduledDate": "2026-04-01"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "PATCH", fmt.Sprintf("/slots/%d", slots[0].ID),
		fiber.Map{"scheduledDate": "2026-03-04", "startTime": "11:00"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.ExamSlot
	require.NoError(t, db.First(&reloaded, slots[0].ID).Error)
	assert.Equal(t, models.SlotStatusRescheduled, reloaded.Status)
	assert.Equal(t, "11:00", reloaded.StartTime)
	assert.True(t, reloaded.ScheduledDate.After(schedule.StartDate))
}
