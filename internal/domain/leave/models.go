package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	RestrictionNone   = "none"
	RestrictionMale   = "male"
	RestrictionFemale = "female"
)

// TypeDefinition is one entry of the leave type catalog. The catalog is
// reference data: loaded at seed time and immutable at runtime.
type TypeDefinition struct {
	Code              string `json:"code"`
	Label             string `json:"label"`
	BaseAnnualDays    int    `json:"baseAnnualDays"`
	GenderRestriction string `json:"genderRestriction"`
	ProRated          bool   `json:"proRated"`
}

type Request struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	LeaveTypeCode string    `json:"leaveTypeCode"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Days          int       `json:"days"`
	Reason        string    `json:"reason,omitempty"`
	Status        string    `json:"status"`
	DecidedBy     string    `json:"decidedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Balance is derived on demand, never persisted.
type Balance struct {
	Entitlement int `json:"entitlement"`
	Used        int `json:"used"`
	Pending     int `json:"pending"`
	Remaining   int `json:"remaining"`
}

// TypeBalance pairs a balance with its leave type for summary views.
type TypeBalance struct {
	LeaveTypeCode string `json:"leaveTypeCode"`
	Label         string `json:"label"`
	Balance
}
