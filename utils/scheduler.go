package utils

import (
	"esd/database"
	"esd/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logSweep logs scheduler events with timestamp
func logSweep(message string) {
	log.Printf("[SWEEP %s] %s", time.Now().Format(time.RFC3339), message)
}

// evictExpiredOTPs removes OTP rows that expired or ran out of attempts.
func evictExpiredOTPs() {
	db := database.Database.Db

	res := db.Where("expires_at < ? OR attempts >= max_attempts OR is_used = ?", time.Now(), true).
		Delete(&models.OTP{})
	if res.Error != nil {
		logSweep("Error evicting OTPs: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logSweep("Evicted expired OTP rows")
	}
}

// rollExamScheduleStatuses moves active schedules past their end date to
// completed, and draft schedules whose window opened to active.
func rollExamScheduleStatuses() {
	db := database.Database.Db
	today := now.BeginningOfDay()

	if err := db.Model(&models.ExamSchedule{}).
		Where("status = ? AND end_date < ? AND is_deleted = ?", models.ScheduleStatusActive, today, false).
		Update("status", models.ScheduleStatusCompleted).Error; err != nil {
		logSweep("Error completing exam schedules: " + err.Error())
	}
}

// rollEventStatuses walks events through upcoming -> ongoing -> completed.
func rollEventStatuses() {
	db := database.Database.Db
	current := time.Now()

	if err := db.Model(&models.Event{}).
		Where("status = ? AND start_date <= ? AND end_date > ? AND is_deleted = ?",
			models.EventStatusUpcoming, current, current, false).
		Update("status", models.EventStatusOngoing).Error; err != nil {
		logSweep("Error starting events: " + err.Error())
	}

	if err := db.Model(&models.Event{}).
		Where("status IN ? AND end_date <= ? AND is_deleted = ?",
			[]string{models.EventStatusUpcoming, models.EventStatusOngoing}, current, false).
		Update("status", models.EventStatusCompleted).Error; err != nil {
		logSweep("Error completing events: " + err.Error())
	}
}

// StartSchedulers registers the background cron sweeps.
func StartSchedulers() {
	c := cron.New()

	// Every 10 minutes: OTP eviction
	c.AddFunc("*/10 * * * *", evictExpiredOTPs)

	// Every 15 minutes: event status rolling
	c.AddFunc("*/15 * * * *", rollEventStatuses)

	// Daily just after midnight: exam schedule completion
	c.AddFunc("5 0 * * *", rollExamScheduleStatuses)

	c.Start()
	logSweep("Background sweeps registered")
}
