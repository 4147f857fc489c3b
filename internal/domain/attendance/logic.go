package attendance

import (
	"errors"
	"math"
	"time"

	"juniorjoy/internal/domain/leave"
)

var ErrClockOutBeforeIn = errors.New("clock-out before clock-in")

// WorkedHours returns the hours between clock-in and clock-out rounded
// to two decimals.
func WorkedHours(clockIn, clockOut time.Time) (float64, error) {
	if clockOut.Before(clockIn) {
		return 0, ErrClockOutBeforeIn
	}
	hours := clockOut.Sub(clockIn).Hours()
	return math.Round(hours*100) / 100, nil
}

// Summarize aggregates completed records over an inclusive date range.
// The day span follows the same inclusive day-count rule as leave
// requests, including its end-before-start validation.
func Summarize(records []Record, startDate, endDate time.Time) (Summary, error) {
	days, err := leave.DayCount(startDate, endDate)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{StartDate: startDate, EndDate: endDate, Days: days}
	for _, rec := range records {
		if rec.WorkDate.Before(startDate) || rec.WorkDate.After(endDate) {
			continue
		}
		if rec.Hours == nil {
			continue
		}
		summary.DaysWorked++
		summary.TotalHours += *rec.Hours
	}
	summary.TotalHours = math.Round(summary.TotalHours*100) / 100
	return summary, nil
}
