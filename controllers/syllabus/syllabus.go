package syllabusController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CreateSyllabus registers a course syllabus, optionally with a document.
func CreateSyllabus(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	courseCode := c.FormValue("courseCode")
	courseName := c.FormValue("courseName")
	if courseCode == "" || courseName == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course code and name are required!", nil)
	}

	semester, _ := strconv.Atoi(c.FormValue("semester"))

	syllabus := models.CourseSyllabus{
		CourseCode:   courseCode,
		CourseName:   courseName,
		Department:   c.FormValue("department"),
		Semester:     semester,
		AcademicYear: c.FormValue("academicYear"),
		Description:  c.FormValue("description"),
		UploadedBy:   user.ID,
	}

	if file, err := c.FormFile("file"); err == nil {
		if !utils.IsAllowedFileType(file.Filename, []string{".pdf", ".doc", ".docx"}) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Syllabus must be a PDF or Word document!", nil)
		}
		stored, serr := utils.SaveUploadedFile(file, "syllabi")
		if serr != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		syllabus.FileURL = utils.GetFileURL(stored)
		syllabus.FileName = file.Filename
	}

	if err := database.Database.Db.Create(&syllabus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save syllabus!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Syllabus created.", syllabus)
}

// ListSyllabi filters by department, semester and academic year.
func ListSyllabi(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if semester := c.QueryInt("semester"); semester > 0 {
		query = query.Where("semester = ?", semester)
	}
	if year := c.Query("academicYear"); year != "" {
		query = query.Where("academic_year = ?", year)
	}

	var syllabi []models.CourseSyllabus
	if err := query.Order("course_code asc").Find(&syllabi).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch syllabi!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Syllabi fetched.", syllabi)
}

// GetSyllabus returns one syllabus by id.
func GetSyllabus(c *fiber.Ctx) error {
	syllabusID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid syllabus id!", nil)
	}

	var syllabus models.CourseSyllabus
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", syllabusID, false).
		First(&syllabus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Syllabus not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Syllabus fetched.", syllabus)
}

// UpdateSyllabus edits metadata and optionally replaces the document.
func UpdateSyllabus(c *fiber.Ctx) error {
	syllabusID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid syllabus id!", nil)
	}

	db := database.Database.Db

	var syllabus models.CourseSyllabus
	if err := db.Where("id = ? AND is_deleted = ?", syllabusID, false).First(&syllabus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Syllabus not found!", nil)
	}

	if v := c.FormValue("courseName"); v != "" {
		syllabus.CourseName = v
	}
	if v := c.FormValue("department"); v != "" {
		syllabus.Department = v
	}
	if v := c.FormValue("academicYear"); v != "" {
		syllabus.AcademicYear = v
	}
	if v := c.FormValue("description"); v != "" {
		syllabus.Description = v
	}
	if semester, _ := strconv.Atoi(c.FormValue("semester")); semester > 0 {
		syllabus.Semester = semester
	}

	if file, ferr := c.FormFile("file"); ferr == nil {
		if !utils.IsAllowedFileType(file.Filename, []string{".pdf", ".doc", ".docx"}) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Syllabus must be a PDF or Word document!", nil)
		}
		stored, serr := utils.SaveUploadedFile(file, "syllabi")
		if serr != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		syllabus.FileURL = utils.GetFileURL(stored)
		syllabus.FileName = file.Filename
	}

	if err := db.Save(&syllabus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update syllabus!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Syllabus updated.", syllabus)
}

// DeleteSyllabus soft-deletes the record.
func DeleteSyllabus(c *fiber.Ctx) error {
	syllabusID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid syllabus id!", nil)
	}

	db := database.Database.Db

	var syllabus models.CourseSyllabus
	if err := db.Where("id = ? AND is_deleted = ?", syllabusID, false).First(&syllabus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Syllabus not found!", nil)
	}

	if err := db.Model(&syllabus).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete syllabus!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Syllabus deleted.", nil)
}
