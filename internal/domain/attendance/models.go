package attendance

import "time"

type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	WorkDate   time.Time  `json:"workDate"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	Hours      *float64   `json:"hours,omitempty"`
}

// Summary aggregates a date range: the inclusive day span of the range
// and the worked hours recorded inside it.
type Summary struct {
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Days       int       `json:"days"`
	DaysWorked int       `json:"daysWorked"`
	TotalHours float64   `json:"totalHours"`
}
