package utils

import (
	"esd/database"
	"esd/models"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSweepDB(t *testing.T) *gorm.DB {
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

func TestEvictExpiredOTPs(t *testing.T) {
	db := setupSweepDB(t)

	rows := []models.OTP{
		{UserID: 1, Email: "a@example.com", Code: "111111", ExpiresAt: time.Now().Add(-time.Minute), MaxAttempts: 5},
		{UserID: 2, Email: "b@example.com", Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute), Attempts: 5, MaxAttempts: 5},
		{UserID: 3, Email: "c@example.com", Code: "333333", ExpiresAt: time.Now().Add(10 * time.Minute), MaxAttempts: 5, IsUsed: true},
		{UserID: 4, Email: "d@example.com", Code: "444444", ExpiresAt: time.Now().Add(10 * time.Minute), Attempts: 1, MaxAttempts: 5},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	evictExpiredOTPs()

	// Expired, exhausted and used rows are gone; the live one survives
	var remaining []models.OTP
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint(4), remaining[0].UserID)
}

func TestRollEventStatuses(t *testing.T) {
	db := setupSweepDB(t)

	events := []models.Event{
		{Title: "future", StartDate: time.Now().Add(time.Hour), EndDate: time.Now().Add(2 * time.Hour), Status: models.EventStatusUpcoming, CreatedBy: 1},
		{Title: "running", StartDate: time.Now().Add(-time.Hour), EndDate: time.Now().Add(time.Hour), Status: models.EventStatusUpcoming, CreatedBy: 1},
		{Title: "done", StartDate: time.Now().Add(-3 * time.Hour), EndDate: time.Now().Add(-time.Hour), Status: models.EventStatusOngoing, CreatedBy: 1},
	}
	for i := range events {
		require.NoError(t, db.Create(&events[i]).Error)
	}

	rollEventStatuses()

	reload := func(id uint) string {
		var e models.Event
		require.NoError(t, db.First(&e, id).Error)
		return e.Status
	}
	assert.Equal(t, models.EventStatusUpcoming, reload(events[0].ID))
	assert.Equal(t, models.EventStatusOngoing, reload(events[1].ID))
	assert.Equal(t, models.EventStatusCompleted, reload(events[2].ID))
}
