package examScheduleController

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, minutes)

	minutes, err = ParseClock("17:45")
	require.NoError(t, err)
	assert.Equal(t, 1065, minutes)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("bogus")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "09:40", FormatClock(580))
	assert.Equal(t, "18:00", FormatClock(1080))
}

func TestLayoutGlobalSlotsRoundRobin(t *testing.T) {
	startDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mentors := []uint{101, 102, 103}
	teams := []uint{1, 2, 3, 4, 5, 6, 7}

	plans := LayoutGlobalSlots(mentors, teams, startDate, 30)
	require.Len(t, plans, 7)

	// Teams cycle through mentors in order
	wantMentors := []uint{101, 102, 103, 101, 102, 103, 101}
	for i, plan := range plans {
		assert.Equal(t, wantMentors[i], plan.MentorID, "plan %d", i)
		assert.Equal(t, teams[i], plan.TeamID, "plan %d", i)
	}

	// Clock starts at 09:00 and strides by duration plus buffer
	assert.Equal(t, "09:00", plans[0].StartTime)
	assert.Equal(t, "09:40", plans[1].StartTime)
	assert.Equal(t, "10:20", plans[2].StartTime)
	assert.Equal(t, "13:00", plans[6].StartTime)

	for _, plan := range plans {
		assert.Equal(t, startDate, plan.Date)
	}
}

func TestLayoutGlobalSlotsRollsOverAtDayEnd(t *testing.T) {
	startDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 120+10 minute stride fits four placements before 18:00
	// (09:00, 11:10, 13:20, 15:30, then 17:40 which still starts before
	// 18:00, then rollover)
	teams := []uint{1, 2, 3, 4, 5, 6}
	plans := LayoutGlobalSlots([]uint{7}, teams, startDate, 120)
	require.Len(t, plans, 6)

	assert.Equal(t, "09:00", plans[0].StartTime)
	assert.Equal(t, "11:10", plans[1].StartTime)
	assert.Equal(t, "13:20", plans[2].StartTime)
	assert.Equal(t, "15:30", plans[3].StartTime)
	assert.Equal(t, "17:40", plans[4].StartTime)
	assert.Equal(t, startDate, plans[4].Date)

	// Sixth placement would start at or past 18:00, so it moves to the
	// next day at 09:00
	assert.Equal(t, "09:00", plans[5].StartTime)
	assert.Equal(t, startDate.AddDate(0, 0, 1), plans[5].Date)
}

func TestLayoutGlobalSlotsEmptyInputs(t *testing.T) {
	startDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, LayoutGlobalSlots(nil, []uint{1}, startDate, 30))
	assert.Nil(t, LayoutGlobalSlots([]uint{1}, nil, startDate, 30))
}

func TestCheckMentorWindowFits(t *testing.T) {
	// 5 teams * 30 min + 4 * 10 min buffer = 190 needed, 09:00-13:00 = 240
	budget, err := CheckMentorWindow(5, 30, 10, "09:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, 190, budget.TotalTimeNeeded)
	assert.Equal(t, 240, budget.AvailableTime)
}

func TestCheckMentorWindowRejectsOverflow(t *testing.T) {
	// 8 teams * 30 min + 7 * 10 min = 310 needed, only 240 available
	budget, err := CheckMentorWindow(8, 30, 10, "09:00", "13:00")
	require.Error(t, err)
	assert.Equal(t, 310, budget.TotalTimeNeeded)
	assert.Equal(t, 240, budget.AvailableTime)
}

func TestCheckMentorWindowExactFit(t *testing.T) {
	// 4 teams * 50 min + 3 * 10 min = 230 needed against 230 available
	budget, err := CheckMentorWindow(4, 50, 10, "09:00", "12:50")
	require.NoError(t, err)
	assert.Equal(t, budget.AvailableTime, budget.TotalTimeNeeded)
}

func TestCheckMentorWindowInvalidInputs(t *testing.T) {
	_, err := CheckMentorWindow(0, 30, 10, "09:00", "13:00")
	assert.Error(t, err)

	_, err = CheckMentorWindow(3, 30, 10, "13:00", "09:00")
	assert.Error(t, err)

	_, err = CheckMentorWindow(3, 30, 10, "garbage", "13:00")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2026-03-02", "2026-03-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), end)

	_, _, err = parseDateRange("2026-03-06", "2026-03-02")
	assert.Error(t, err)

	_, _, err = parseDateRange("06-03-2026", "2026-03-02")
	assert.Error(t, err)
}
