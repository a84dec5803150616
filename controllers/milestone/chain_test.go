package milestoneController

import (
	"esd/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func makeMilestone(id uint, start, end time.Time) models.Milestone {
	return models.Milestone{
		Model:     gorm.Model{ID: id},
		Name:      "m",
		Type:      models.MilestoneTypeAssignment,
		StartDate: start,
		EndDate:   end,
	}
}

func TestVisibleMilestonesDripFeed(t *testing.T) {
	// Five sequential week-long milestones; now is inside the third
	milestones := []models.Milestone{
		makeMilestone(1, day(-14), day(-7)),
		makeMilestone(2, day(-7), day(0)),
		makeMilestone(3, day(0), day(7)),
		makeMilestone(4, day(7), day(14)),
		makeMilestone(5, day(14), day(21)),
	}
	at := day(3)

	views := VisibleMilestonesForStudent(milestones, map[uint]bool{}, at)
	require.Len(t, views, 4)

	// Past and active milestones are open
	assert.Equal(t, uint(1), views[0].ID)
	assert.False(t, views[0].IsLocked)
	assert.False(t, views[1].IsLocked)
	assert.Equal(t, uint(3), views[2].ID)
	assert.False(t, views[2].IsLocked)

	// Exactly one upcoming milestone appears, locked; the fifth is hidden
	assert.Equal(t, uint(4), views[3].ID)
	assert.True(t, views[3].IsLocked)
}

func TestVisibleMilestonesCompletedUpcomingIsUnlocked(t *testing.T) {
	milestones := []models.Milestone{
		makeMilestone(1, day(0), day(7)),
		makeMilestone(2, day(7), day(14)),
	}
	at := day(1)

	views := VisibleMilestonesForStudent(milestones, map[uint]bool{2: true}, at)
	require.Len(t, views, 2)

	// A completed milestone is never relocked even if its window has not
	// opened yet
	assert.Equal(t, uint(2), views[1].ID)
	assert.False(t, views[1].IsLocked)
}

func TestVisibleMilestonesAllInFuture(t *testing.T) {
	milestones := []models.Milestone{
		makeMilestone(1, day(7), day(14)),
		makeMilestone(2, day(14), day(21)),
		makeMilestone(3, day(21), day(28)),
	}

	views := VisibleMilestonesForStudent(milestones, map[uint]bool{}, day(0))
	require.Len(t, views, 1)
	assert.Equal(t, uint(1), views[0].ID)
	assert.True(t, views[0].IsLocked)
}

func TestVisibleMilestonesEmptyChain(t *testing.T) {
	views := VisibleMilestonesForStudent(nil, map[uint]bool{}, day(0))
	assert.Empty(t, views)
}
