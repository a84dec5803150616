package attendanceController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var attendanceStatuses = map[string]bool{
	models.AttendancePresent: true,
	models.AttendanceAbsent:  true,
	models.AttendanceLate:    true,
	models.AttendanceExcused: true,
}

func parseSessionDate(raw string) (time.Time, error) {
	if raw == "" {
		return now.BeginningOfDay(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// MarkAttendance records one student's mark for a session date. An
// existing mark for the same day is updated rather than duplicated.
func MarkAttendance(c *fiber.Ctx) error {
	staff := c.Locals("currentUser").(*models.User)

	reqData := new(struct {
		StudentID uint   `json:"studentId"`
		Date      string `json:"date"`
		Status    string `json:"status"`
		Note      string `json:"note"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.StudentID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student id is required!", nil)
	}
	if !attendanceStatuses[reqData.Status] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attendance status!", nil)
	}

	sessionDate, err := parseSessionDate(reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", reqData.StudentID, models.RoleStudent, false).
		First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var record models.AttendanceRecord
	err = db.Where("student_id = ? AND date = ? AND is_deleted = ?", student.ID, sessionDate, false).
		First(&record).Error
	if err != nil {
		record = models.AttendanceRecord{
			StudentID: student.ID,
			Date:      sessionDate,
			TeamID:    student.TeamID,
		}
	}

	record.Status = reqData.Status
	record.Note = reqData.Note
	record.MarkedBy = staff.ID

	if err := db.Save(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked.", record)
}

// BulkMarkAttendance marks a whole session in one transaction. Any invalid
// entry aborts the batch.
func BulkMarkAttendance(c *fiber.Ctx) error {
	staff := c.Locals("currentUser").(*models.User)

	reqData := new(struct {
		Date    string `json:"date"`
		Entries []struct {
			StudentID uint   `json:"studentId"`
			Status    string `json:"status"`
			Note      string `json:"note"`
		} `json:"entries"`
	})
	if err := c.BodyParser(reqData); err != nil || len(reqData.Entries) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one entry is required!", nil)
	}

	sessionDate, err := parseSessionDate(reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
	}

	for _, entry := range reqData.Entries {
		if entry.StudentID == 0 || !attendanceStatuses[entry.Status] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Every entry needs a student id and a valid status!", nil)
		}
	}

	db := database.Database.Db

	marked := 0
	txErr := db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range reqData.Entries {
			var student models.User
			if err := tx.Where("id = ? AND role = ? AND is_deleted = ?", entry.StudentID, models.RoleStudent, false).
				First(&student).Error; err != nil {
				return err
			}

			var record models.AttendanceRecord
			err := tx.Where("student_id = ? AND date = ? AND is_deleted = ?", student.ID, sessionDate, false).
				First(&record).Error
			if err != nil {
				record = models.AttendanceRecord{
					StudentID: student.ID,
					Date:      sessionDate,
					TeamID:    student.TeamID,
				}
			}

			record.Status = entry.Status
			record.Note = entry.Note
			record.MarkedBy = staff.ID

			if err := tx.Save(&record).Error; err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bulk marking failed, no records saved!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked.", fiber.Map{"marked": marked})
}

// GetStudentAttendance returns a student's records plus summary counts.
// Students read their own record; staff may pass studentId.
func GetStudentAttendance(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	studentID := user.ID
	if queried := c.QueryInt("studentId"); queried > 0 && user.IsStaff() {
		studentID = uint(queried)
	}

	db := database.Database.Db

	query := db.Where("student_id = ? AND is_deleted = ?", studentID, false)
	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("date <= ?", toDate)
		}
	}

	var records []models.AttendanceRecord
	if err := query.Order("date desc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	summary := map[string]int{}
	for _, record := range records {
		summary[record.Status]++
	}

	present := summary[models.AttendancePresent] + summary[models.AttendanceLate]
	var percentage float64
	if len(records) > 0 {
		percentage = float64(present) / float64(len(records)) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched.", fiber.Map{
		"records":    records,
		"summary":    summary,
		"total":      len(records),
		"percentage": percentage,
	})
}

// GetSessionAttendance returns every mark for one session date.
func GetSessionAttendance(c *fiber.Ctx) error {
	sessionDate, err := parseSessionDate(c.Query("date"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
	}

	db := database.Database.Db

	var records []models.AttendanceRecord
	if err := db.Where("date = ? AND is_deleted = ?", sessionDate, false).
		Order("student_id asc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	summary := map[string]int{}
	for _, record := range records {
		summary[record.Status]++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session attendance fetched.", fiber.Map{
		"date":    sessionDate.Format("2006-01-02"),
		"records": records,
		"summary": summary,
	})
}
