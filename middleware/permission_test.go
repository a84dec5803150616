package middleware

import (
	"esd/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentsHaveNoStaffCapabilities(t *testing.T) {
	actions := []string{
		ActManageUsers, ActManageRoles, ActManageChains, ActGradeSubmissions,
		ActManageSchedules, ActMentorSlots, ActManageEvents, ActManageResources,
		ActMarkAttendance, ActMentorFeedback, ActModerateForum, ActParseQuestions,
	}
	for _, action := range actions {
		assert.False(t, Can(models.RoleStudent, action), action)
	}
}

func TestMentorCapabilities(t *testing.T) {
	assert.True(t, Can(models.RoleMentor, ActGradeSubmissions))
	assert.True(t, Can(models.RoleMentor, ActMentorSlots))
	assert.True(t, Can(models.RoleMentor, ActMentorFeedback))
	assert.True(t, Can(models.RoleMentor, ActMarkAttendance))

	assert.False(t, Can(models.RoleMentor, ActManageUsers))
	assert.False(t, Can(models.RoleMentor, ActManageChains))
	assert.False(t, Can(models.RoleMentor, ActManageRoles))
}

func TestOnlySuperAdminManagesRoles(t *testing.T) {
	assert.True(t, Can(models.RoleSuperAdmin, ActManageRoles))
	assert.False(t, Can(models.RoleAdmin, ActManageRoles))
	assert.False(t, Can(models.RoleMentor, ActManageRoles))
	assert.False(t, Can(models.RoleStudent, ActManageRoles))
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	assert.False(t, Can("visitor", ActManageUsers))
	assert.False(t, Can("", ActManageEvents))
}
