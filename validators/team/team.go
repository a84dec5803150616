package teamValidator

import (
	"esd/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam validator middleware
func CreateTeam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			ProjectName string `json:"projectName"`
			MaxMembers  int    `json:"maxMembers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Team name must be at least 3 characters long!"
		}
		if reqData.MaxMembers != 0 && (reqData.MaxMembers < 2 || reqData.MaxMembers > 10) {
			errors["maxMembers"] = "Team size must be between 2 and 10!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// AssignMentor validator middleware
func AssignMentor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MentorID uint `json:"mentorId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MentorID == 0 {
			errors["mentorId"] = "Mentor id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
