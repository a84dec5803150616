package middleware

import (
	"esd/models"

	"github.com/gofiber/fiber/v2"
)

// Capability actions. Handlers gate on these instead of comparing role
// strings inline.
const (
	ActManageUsers      = "manage-users"
	ActManageRoles      = "manage-roles"
	ActManageChains     = "manage-chains"
	ActGradeSubmissions = "grade-submissions"
	ActManageSchedules  = "manage-schedules"
	ActMentorSlots      = "mentor-slots"
	ActManageEvents     = "manage-events"
	ActManageResources  = "manage-resources"
	ActMarkAttendance   = "mark-attendance"
	ActMentorFeedback   = "mentor-feedback"
	ActModerateForum    = "moderate-forum"
	ActParseQuestions   = "parse-questions"
)

// capabilities maps each role to its permitted actions. A single table keeps
// role checks uniform across handlers.
var capabilities = map[string]map[string]bool{
	models.RoleStudent: {},
	models.RoleMentor: {
		ActGradeSubmissions: true,
		ActMentorSlots:      true,
		ActMarkAttendance:   true,
		ActMentorFeedback:   true,
	},
	models.RoleAdmin: {
		ActManageUsers:      true,
		ActManageChains:     true,
		ActGradeSubmissions: true,
		ActManageSchedules:  true,
		ActMentorSlots:      true,
		ActManageEvents:     true,
		ActManageResources:  true,
		ActMarkAttendance:   true,
		ActModerateForum:    true,
		ActParseQuestions:   true,
	},
	models.RoleSuperAdmin: {
		ActManageUsers:      true,
		ActManageRoles:      true,
		ActManageChains:     true,
		ActGradeSubmissions: true,
		ActManageSchedules:  true,
		ActMentorSlots:      true,
		ActManageEvents:     true,
		ActManageResources:  true,
		ActMarkAttendance:   true,
		ActMentorFeedback:   true,
		ActModerateForum:    true,
		ActParseQuestions:   true,
	},
}

// Can reports whether a role is allowed to perform an action.
func Can(role, action string) bool {
	perms, ok := capabilities[role]
	if !ok {
		return false
	}
	return perms[action]
}

// LoadUser resolves the authenticated user and stores it in request locals
// without checking any capability. For routes open to every signed-in role.
func LoadUser(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	c.Locals("currentUser", user)
	return c.Next()
}

// RequirePermission returns a middleware that loads the authenticated user
// and rejects the request unless the user's role carries the action.
func RequirePermission(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
		}

		if !Can(user.Role, action) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("currentUser", user)
		return c.Next()
	}
}
