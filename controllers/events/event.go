package eventController

import (
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent creates a new event. Admin tier only.
func CreateEvent(c *fiber.Ctx) error {
	admin := c.Locals("currentUser").(*models.User)

	var reqData models.Event
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title == "" || reqData.StartDate.IsZero() || reqData.EndDate.IsZero() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title, start date and end date are required!", nil)
	}
	if reqData.EndDate.Before(reqData.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must be after start date!", nil)
	}

	event := models.Event{
		Title:       reqData.Title,
		Description: reqData.Description,
		EventType:   reqData.EventType,
		Venue:       reqData.Venue,
		BannerImage: reqData.BannerImage,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
		Capacity:    reqData.Capacity,
		Status:      models.EventStatusUpcoming,
		CreatedBy:   admin.ID,
	}
	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	services.Emit(services.GlobalRoom(), services.EventEventCreated, fiber.Map{
		"eventId": event.ID,
		"title":   event.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully.", event)
}

// UpdateEvent patches an event's mutable fields.
func UpdateEvent(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var reqData models.Event
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		event.Title = reqData.Title
	}
	if reqData.Description != "" {
		event.Description = reqData.Description
	}
	if reqData.Venue != "" {
		event.Venue = reqData.Venue
	}
	if !reqData.StartDate.IsZero() {
		event.StartDate = reqData.StartDate
	}
	if !reqData.EndDate.IsZero() {
		event.EndDate = reqData.EndDate
	}
	if reqData.Capacity > 0 {
		event.Capacity = reqData.Capacity
	}
	if reqData.Status != "" {
		event.Status = reqData.Status
	}

	if event.EndDate.Before(event.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must be after start date!", nil)
	}

	if err := db.Save(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event updated successfully.", event)
}

// DeleteEvent soft-deletes an event and its registrations.
func DeleteEvent(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	event.IsDeleted = true
	db.Save(&event)
	db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event deleted.", nil)
}

// RegisterForEvent registers the caller, respecting capacity.
func RegisterForEvent(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Registration is closed for this event!", nil)
	}

	var existing models.EventRegistration
	if err := db.Where("event_id = ? AND user_id = ? AND is_deleted = ?", event.ID, user.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already registered for this event!", nil)
	}

	if event.Capacity > 0 {
		var count int64
		db.Model(&models.EventRegistration{}).Where("event_id = ? AND is_deleted = ?", event.ID, false).Count(&count)
		if int(count) >= event.Capacity {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Event is at full capacity!", nil)
		}
	}

	reg := models.EventRegistration{
		EventID:      event.ID,
		UserID:       user.ID,
		RegisteredAt: time.Now(),
	}
	if err := db.Create(&reg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered for event.", reg)
}

// UnregisterFromEvent cancels the caller's registration.
func UnregisterFromEvent(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	res := database.Database.Db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ? AND is_deleted = ?", eventID, user.ID, false).
		Update("is_deleted", true)
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Registration not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration cancelled.", nil)
}

// ListEvents returns events, optionally filtered by status or type.
func ListEvents(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if eventType := c.Query("type"); eventType != "" {
		db = db.Where("event_type = ?", eventType)
	}

	var events []models.Event
	if err := db.Order("start_date asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched.", events)
}

// GetEventAttendees returns an event's registrations with user info.
func GetEventAttendees(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
	}

	db := database.Database.Db

	var regs []models.EventRegistration
	if err := db.Where("event_id = ? AND is_deleted = ?", eventID, false).Find(&regs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendees!", nil)
	}

	type attendee struct {
		models.EventRegistration
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	attendees := make([]attendee, 0, len(regs))
	for _, reg := range regs {
		var user models.User
		if err := db.Select("name, email").First(&user, reg.UserID).Error; err != nil {
			continue
		}
		attendees = append(attendees, attendee{EventRegistration: reg, Name: user.Name, Email: user.Email})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendees fetched.", attendees)
}
