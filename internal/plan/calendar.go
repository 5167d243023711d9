package plan

import (
	"time"

	"github.com/wonny/drip/internal/contracts"
)

const dateLayout = "2006-01-02"

// Dates returns the concrete calendar dates for a cadence, relative to now.
// Deterministic: the same now always yields the same dates.
func Dates(cadence contracts.Cadence, now time.Time) []string {
	switch cadence {
	case contracts.CadenceDaily:
		return dailyDates(now, 10)
	case contracts.CadenceWeekly:
		return offsetDates(now, 7, 14, 21, 28)
	case contracts.CadenceBiweekly:
		return offsetDates(now, 14, 28)
	case contracts.CadenceMonthly:
		return monthlyDates(now)
	default:
		return nil
	}
}

// dailyDates returns the next n weekdays after now, skipping weekends
func dailyDates(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	day := now
	for len(dates) < n {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, day.Format(dateLayout))
	}
	return dates
}

// offsetDates returns now shifted by each offset in days
func offsetDates(now time.Time, offsets ...int) []string {
	dates := make([]string, 0, len(offsets))
	for _, d := range offsets {
		dates = append(dates, now.AddDate(0, 0, d).Format(dateLayout))
	}
	return dates
}

// monthlyDates returns the 15th of the current month when it is still
// ahead, plus the 15th of the next month
func monthlyDates(now time.Time) []string {
	var dates []string

	if now.Day() < 15 {
		this := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, now.Location())
		dates = append(dates, this.Format(dateLayout))
	}

	next := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	dates = append(dates, next.Format(dateLayout))

	return dates
}
