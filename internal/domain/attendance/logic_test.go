package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juniorjoy/internal/domain/leave"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour, minute int) time.Time {
	return time.Date(2025, time.June, d, hour, minute, 0, 0, time.UTC)
}

func hoursPtr(h float64) *float64 { return &h }

func TestWorkedHours(t *testing.T) {
	hours, err := WorkedHours(at(2, 9, 0), at(2, 17, 30))
	require.NoError(t, err)
	assert.Equal(t, 8.5, hours)

	_, err = WorkedHours(at(2, 17, 0), at(2, 9, 0))
	assert.ErrorIs(t, err, ErrClockOutBeforeIn)
}

func TestSummarizeRange(t *testing.T) {
	records := []Record{
		{WorkDate: day(1), Hours: hoursPtr(8)},
		{WorkDate: day(2), Hours: hoursPtr(7.25)},
		{WorkDate: day(3)}, // still clocked in, no hours yet
		{WorkDate: day(9), Hours: hoursPtr(8)},
	}

	summary, err := Summarize(records, day(1), day(5))
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Days)
	assert.Equal(t, 2, summary.DaysWorked)
	assert.Equal(t, 15.25, summary.TotalHours)
}

func TestSummarizeRejectsReversedRange(t *testing.T) {
	_, err := Summarize(nil, day(5), day(1))
	assert.ErrorIs(t, err, leave.ErrEndBeforeStart)
}
