package resourceController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var resourceFileTypes = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".txt", ".zip", ".png", ".jpg", ".jpeg"}

// UploadResource stores a file and creates its catalogue entry.
func UploadResource(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}
	if !utils.IsAllowedFileType(file.Filename, resourceFileTypes) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File type not allowed!", nil)
	}

	title := c.FormValue("title")
	if title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	cohortYear, _ := strconv.Atoi(c.FormValue("cohortYear"))

	stored, err := utils.SaveUploadedFile(file, "resources")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	resource := models.Resource{
		Title:       title,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category", "other"),
		FileURL:     utils.GetFileURL(stored),
		FileName:    file.Filename,
		FileSize:    file.Size,
		MimeType:    file.Header.Get("Content-Type"),
		Department:  c.FormValue("department"),
		CohortYear:  cohortYear,
		UploadedBy:  user.ID,
	}

	if err := database.Database.Db.Create(&resource).Error; err != nil {
		utils.DeleteStoredFile(stored)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource uploaded.", resource)
}

// ListResources returns the catalogue, optionally filtered by category,
// department or cohort year.
func ListResources(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if cohort := c.QueryInt("cohortYear"); cohort > 0 {
		query = query.Where("cohort_year = ?", cohort)
	}

	var resources []models.Resource
	if err := query.Order("created_at desc").Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched.", resources)
}

// DownloadResource bumps the download counter and returns the file URL.
func DownloadResource(c *fiber.Ctx) error {
	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource models.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	db.Model(&resource).Update("downloads", resource.Downloads+1)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource ready.", fiber.Map{
		"fileUrl":  resource.FileURL,
		"fileName": resource.FileName,
	})
}

// UpdateResource edits catalogue metadata. Uploader or any staff member.
func UpdateResource(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource models.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if resource.UploadedBy != user.ID && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot edit this resource!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Department  string `json:"department"`
		CohortYear  int    `json:"cohortYear"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		resource.Title = reqData.Title
	}
	if reqData.Description != "" {
		resource.Description = reqData.Description
	}
	if reqData.Category != "" {
		resource.Category = reqData.Category
	}
	if reqData.Department != "" {
		resource.Department = reqData.Department
	}
	if reqData.CohortYear > 0 {
		resource.CohortYear = reqData.CohortYear
	}

	if err := db.Save(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource updated.", resource)
}

// DeleteResource soft-deletes the catalogue entry. The stored file is kept
// so existing links do not break.
func DeleteResource(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource models.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if resource.UploadedBy != user.ID && !user.IsStaff() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this resource!", nil)
	}

	if err := db.Model(&resource).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted.", nil)
}
