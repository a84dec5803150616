package eventValidator

import (
	"esd/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent validator middleware
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			EventType   string    `json:"eventType"`
			StartDate   time.Time `json:"startDate"`
			EndDate     time.Time `json:"endDate"`
			Capacity    int       `json:"capacity"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Event title must be at least 3 characters long!"
		}

		if reqData.StartDate.IsZero() {
			errors["startDate"] = "Start date is required!"
		}
		if reqData.EndDate.IsZero() {
			errors["endDate"] = "End date is required!"
		}
		if !reqData.StartDate.IsZero() && !reqData.EndDate.IsZero() && !reqData.EndDate.After(reqData.StartDate) {
			errors["endDate"] = "End date must be after start date!"
		}

		if reqData.Capacity < 0 {
			errors["capacity"] = "Capacity cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
