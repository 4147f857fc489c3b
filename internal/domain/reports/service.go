package reports

import (
	"context"
	"time"

	"juniorjoy/internal/platform/querier"
)

type Service struct {
	DB querier.Querier
}

func NewService(q querier.Querier) *Service {
	return &Service{DB: q}
}

type HeadcountRow struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Active         int    `json:"active"`
	Inactive       int    `json:"inactive"`
}

func (s *Service) HeadcountByDepartment(ctx context.Context) ([]HeadcountRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(d.id::text, ''), COALESCE(d.name, 'Unassigned'),
           COUNT(1) FILTER (WHERE e.status = 'active'),
           COUNT(1) FILTER (WHERE e.status = 'inactive')
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    GROUP BY d.id, d.name
    ORDER BY COALESCE(d.name, 'Unassigned')
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HeadcountRow
	for rows.Next() {
		var row HeadcountRow
		if err := rows.Scan(&row.DepartmentID, &row.DepartmentName, &row.Active, &row.Inactive); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type EmployeeExportRow struct {
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Department     string
	Position       string
	HireDate       *time.Time
	Status         string
}

func (s *Service) EmployeeExportRows(ctx context.Context) ([]EmployeeExportRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(e.employee_number, ''), e.first_name, e.last_name, e.email,
           COALESCE(d.name, ''), COALESCE(e.position, ''), e.hire_date, e.status
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    ORDER BY e.last_name, e.first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmployeeExportRow
	for rows.Next() {
		var row EmployeeExportRow
		if err := rows.Scan(&row.EmployeeNumber, &row.FirstName, &row.LastName, &row.Email, &row.Department, &row.Position, &row.HireDate, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type LeaveExportRow struct {
	ID            string
	EmployeeEmail string
	LeaveTypeCode string
	StartDate     time.Time
	EndDate       time.Time
	Days          int
	Status        string
}

func (s *Service) LeaveExportRows(ctx context.Context) ([]LeaveExportRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, e.email, r.leave_type_code, r.start_date, r.end_date, r.days, r.status
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
    ORDER BY r.start_date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveExportRow
	for rows.Next() {
		var row LeaveExportRow
		if err := rows.Scan(&row.ID, &row.EmployeeEmail, &row.LeaveTypeCode, &row.StartDate, &row.EndDate, &row.Days, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
