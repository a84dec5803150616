package milestoneController

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

func setupWorkflowDB(t *testing.T) *gorm.DB {
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

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:           "Test " + role,
		Email:          fmt.Sprintf("%s-%s@example.com", role, t.Name()),
		Password:       "irrelevant",
		Role:           role,
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// setupWorkflowApp registers the chain and milestone handlers behind a stub
// auth layer that injects the given user.
func setupWorkflowApp(user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("currentUser", user)
		return c.Next()
	})

	app.Post("/chains", CreateChain)
	app.Patch("/chains/:id", UpdateChain)
	app.Post("/chains/:id/publish", PublishChain)
	app.Post("/milestones/:milestoneId/start", StartMilestone)
	app.Post("/milestones/:milestoneId/quiz", SubmitQuizAnswers)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestPublishEmptyChainRejected(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	app := setupWorkflowApp(admin)

	chain := models.MilestoneChain{
		Name:         "Capstone 2026",
		AcademicYear: "2025-26",
		Status:       models.ChainStatusEditing,
		CreatedBy:    admin.ID,
	}
	require.NoError(t, db.Create(&chain).Error)

	resp, envelope := doJSON(t, app, "POST", fmt.Sprintf("/chains/%d/publish", chain.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot publish empty chain. Add at least one milestone first.", envelope["message"])

	var reloaded models.MilestoneChain
	require.NoError(t, db.First(&reloaded, chain.ID).Error)
	assert.Equal(t, models.ChainStatusEditing, reloaded.Status)
}

func TestPublishChainCascadesToMilestones(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	app := setupWorkflowApp(admin)

	chain := models.MilestoneChain{
		Name:         "Capstone 2026",
		AcademicYear: "2025-26",
		Status:       models.ChainStatusEditing,
		CreatedBy:    admin.ID,
	}
	require.NoError(t, db.Create(&chain).Error)

	for i := 1; i <= 3; i++ {
		m := models.Milestone{
			ChainID:    chain.ID,
			Name:       fmt.Sprintf("Milestone %d", i),
			Type:       models.MilestoneTypeAssignment,
			OrderIndex: i,
			Status:     models.MilestoneStatusDraft,
			StartDate:  time.Now().AddDate(0, 0, (i-1)*7),
			EndDate:    time.Now().AddDate(0, 0, i*7),
			CreatedBy:  admin.ID,
		}
		require.NoError(t, db.Create(&m).Error)
	}

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/chains/%d/publish", chain.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.MilestoneChain
	require.NoError(t, db.First(&reloaded, chain.ID).Error)
	assert.Equal(t, models.ChainStatusPublished, reloaded.Status)
	assert.Equal(t, 3, reloaded.PublishedMilestones)
	require.NotNil(t, reloaded.PublishedBy)
	assert.Equal(t, admin.ID, *reloaded.PublishedBy)
	assert.NotNil(t, reloaded.PublishedAt)

	var drafts int64
	db.Model(&models.Milestone{}).
		Where("chain_id = ? AND status = ?", chain.ID, models.MilestoneStatusDraft).
		Count(&drafts)
	assert.Zero(t, drafts)
}

func TestPublishedChainIsConflictOnRepublish(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	app := setupWorkflowApp(admin)

	chain := models.MilestoneChain{
		Name:         "Capstone 2026",
		AcademicYear: "2025-26",
		Status:       models.ChainStatusPublished,
		CreatedBy:    admin.ID,
	}
	require.NoError(t, db.Create(&chain).Error)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/chains/%d/publish", chain.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdatePublishedChainRequiresRepublish(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	app := setupWorkflowApp(admin)

	chain := models.MilestoneChain{
		Name:         "Capstone 2026",
		AcademicYear: "2025-26",
		Status:       models.ChainStatusPublished,
		CreatedBy:    admin.ID,
	}
	require.NoError(t, db.Create(&chain).Error)

	resp, envelope := doJSON(t, app, "PATCH", fmt.Sprintf("/chains/%d", chain.ID),
		fiber.Map{"description": "tightened rubric"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["requiresRepublish"])

	var reloaded models.MilestoneChain
	require.NoError(t, db.First(&reloaded, chain.ID).Error)
	assert.Equal(t, models.ChainStatusEditing, reloaded.Status)
}

func TestStartMilestoneIsIdempotent(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	student := createTestUser(t, db, models.RoleStudent)
	app := setupWorkflowApp(student)

	milestone := models.Milestone{
		ChainID:    1,
		Name:       "Week 1",
		Type:       models.MilestoneTypeAssignment,
		OrderIndex: 1,
		Status:     models.MilestoneStatusPublished,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().AddDate(0, 0, 7),
		CreatedBy:  admin.ID,
	}
	require.NoError(t, db.Create(&milestone).Error)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/milestones/%d/start", milestone.ID), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/milestones/%d/start", milestone.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.StudentMilestone{}).
		Where("student_id = ? AND milestone_id = ?", student.ID, milestone.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestQuizTimeoutFailsWithoutGrading(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	student := createTestUser(t, db, models.RoleStudent)
	app := setupWorkflowApp(student)

	questions, _ := json.Marshal([]models.Question{
		{ID: "q1", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "A", Points: 1},
	})
	milestone := models.Milestone{
		ChainID:    1,
		Name:       "Timed quiz",
		Type:       models.MilestoneTypeQuiz,
		OrderIndex: 1,
		Status:     models.MilestoneStatusPublished,
		StartDate:  time.Now().Add(-3 * time.Hour),
		EndDate:    time.Now().AddDate(0, 0, 1),
		Duration:   30,
		Questions:  questions,
		CreatedBy:  admin.ID,
	}
	require.NoError(t, db.Create(&milestone).Error)

	startedAt := time.Now().Add(-2 * time.Hour)
	record := models.StudentMilestone{
		StudentID:     student.ID,
		MilestoneID:   milestone.ID,
		Status:        models.ProgressInProgress,
		Attempts:      1,
		QuizStartedAt: &startedAt,
	}
	require.NoError(t, db.Create(&record).Error)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/milestones/%d/quiz", milestone.ID),
		fiber.Map{"answers": []fiber.Map{{"questionId": "q1", "answer": "A"}}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var reloaded models.StudentMilestone
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, models.ProgressFailed, reloaded.Status)
	assert.Nil(t, reloaded.AutoGradedScore)
	assert.NotNil(t, reloaded.SubmittedAt)
}

func TestQuizSubmissionStaysAdvisory(t *testing.T) {
	db := setupWorkflowDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	student := createTestUser(t, db, models.RoleStudent)
	app := setupWorkflowApp(student)

	questions, _ := json.Marshal([]models.Question{
		{ID: "q1", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "A", Points: 1},
		{ID: "q2", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
	})
	milestone := models.Milestone{
		ChainID:    1,
		Name:       "Quiz",
		Type:       models.MilestoneTypeQuiz,
		OrderIndex: 1,
		Status:     models.MilestoneStatusPublished,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().AddDate(0, 0, 1),
		Duration:   60,
		Questions:  questions,
		CreatedBy:  admin.ID,
	}
	require.NoError(t, db.Create(&milestone).Error)

	startedAt := time.Now().Add(-5 * time.Minute)
	record := models.StudentMilestone{
		StudentID:     student.ID,
		MilestoneID:   milestone.ID,
		Status:        models.ProgressInProgress,
		Attempts:      1,
		QuizStartedAt: &startedAt,
	}
	require.NoError(t, db.Create(&record).Error)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/milestones/%d/quiz", milestone.ID),
		fiber.Map{"answers": []fiber.Map{
			{"questionId": "q1", "answer": "A"},
			{"questionId": "q2", "answer": "false"},
		}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.StudentMilestone
	require.NoError(t, db.First(&reloaded, record.ID).Error)

	// Auto-grading never finalizes the record
	assert.Equal(t, models.ProgressSubmitted, reloaded.Status)
	require.NotNil(t, reloaded.AutoGradedScore)
	assert.Equal(t, 1.0, *reloaded.AutoGradedScore)
	require.NotNil(t, reloaded.AutoGradedPercentage)
	assert.Equal(t, 50.0, *reloaded.AutoGradedPercentage)
	assert.Nil(t, reloaded.Score)
}
