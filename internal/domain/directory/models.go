package directory

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	GenderMale   = "male"
	GenderFemale = "female"
)

type Employee struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Gender         string     `json:"gender"`
	HireDate       *time.Time `json:"hireDate,omitempty"`
	Position       string     `json:"position,omitempty"`
	DepartmentID   string     `json:"departmentId,omitempty"`
	ManagerID      string     `json:"managerId,omitempty"`
	BaseSalary     *float64   `json:"baseSalary,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrgNode is one employee in the reporting tree.
type OrgNode struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Position  string     `json:"position,omitempty"`
	Reports   []*OrgNode `json:"reports,omitempty"`
}
