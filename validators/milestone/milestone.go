package milestoneValidator

import (
	"esd/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateChain validator middleware
func CreateChain() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			CohortYear  int    `json:"cohortYear"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Chain name must be at least 3 characters long!"
		}
		if reqData.CohortYear != 0 && (reqData.CohortYear < 2000 || reqData.CohortYear > 2100) {
			errors["cohortYear"] = "Invalid cohort year!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CreateMilestone validator middleware
func CreateMilestone() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string    `json:"name"`
			Type      string    `json:"type"`
			StartDate time.Time `json:"startDate"`
			EndDate   time.Time `json:"endDate"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Milestone name must be at least 3 characters long!"
		}
		switch reqData.Type {
		case "assignment", "quiz", "exam", "project", "task":
		default:
			errors["type"] = "Type must be one of assignment, quiz, exam, project, task!"
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

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// GradeSubmission validator middleware
func GradeSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score    *float64 `json:"score"`
			MaxScore *float64 `json:"maxScore"`
			Feedback string   `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score == nil {
			errors["score"] = "Score is required!"
		} else if *reqData.Score < 0 {
			errors["score"] = "Score cannot be negative!"
		}
		if reqData.MaxScore != nil && *reqData.MaxScore <= 0 {
			errors["maxScore"] = "Max score must be positive!"
		}
		if reqData.Score != nil && reqData.MaxScore != nil && *reqData.Score > *reqData.MaxScore {
			errors["score"] = "Score cannot exceed max score!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
