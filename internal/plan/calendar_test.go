package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/drip/internal/contracts"
)

func TestDates_DailySkipsWeekends(t *testing.T) {
	// Thursday 2026-08-27
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	dates := Dates(contracts.CadenceDaily, now)

	require.Len(t, dates, 10)
	assert.Equal(t, "2026-08-28", dates[0]) // Friday
	assert.Equal(t, "2026-08-31", dates[1]) // Monday, weekend skipped
	assert.Equal(t, "2026-09-11", dates[9])

	for _, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, day.Weekday())
		assert.NotEqual(t, time.Sunday, day.Weekday())
	}
}

func TestDates_WeeklySameWeekday(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC) // Thursday

	dates := Dates(contracts.CadenceWeekly, now)

	require.Len(t, dates, 4)
	assert.Equal(t, []string{"2026-09-03", "2026-09-10", "2026-09-17", "2026-09-24"}, dates)
	for _, d := range dates {
		day, _ := time.Parse("2006-01-02", d)
		assert.Equal(t, time.Thursday, day.Weekday())
	}
}

func TestDates_Biweekly(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	dates := Dates(contracts.CadenceBiweekly, now)

	assert.Equal(t, []string{"2026-09-10", "2026-09-24"}, dates)
}

func TestDates_MonthlyBeforeMidMonth(t *testing.T) {
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)

	dates := Dates(contracts.CadenceMonthly, now)

	assert.Equal(t, []string{"2026-08-15", "2026-09-15"}, dates)
}

func TestDates_MonthlyAfterMidMonth(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	dates := Dates(contracts.CadenceMonthly, now)

	assert.Equal(t, []string{"2026-09-15"}, dates)
}

func TestDates_MonthlyYearRollover(t *testing.T) {
	now := time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC)

	dates := Dates(contracts.CadenceMonthly, now)

	assert.Equal(t, []string{"2027-01-15"}, dates)
}
