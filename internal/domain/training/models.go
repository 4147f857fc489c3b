package training

import "time"

const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type Program struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Capacity    int        `json:"capacity"`
	Enrolled    int        `json:"enrolled"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Enrollment struct {
	ID          string     `json:"id"`
	ProgramID   string     `json:"programId"`
	EmployeeID  string     `json:"employeeId"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
