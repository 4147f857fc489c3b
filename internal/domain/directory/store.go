package directory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"juniorjoy/internal/platform/querier"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

const employeeColumns = `
    id,
    COALESCE(employee_number, ''),
    first_name, last_name, email,
    COALESCE(phone, ''),
    COALESCE(gender, ''),
    hire_date,
    COALESCE(position, ''),
    COALESCE(department_id::text, ''),
    COALESCE(manager_id::text, ''),
    base_salary,
    status, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.Gender, &emp.HireDate, &emp.Position,
		&emp.DepartmentID, &emp.ManagerID, &emp.BaseSalary,
		&emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return emp, ErrNotFound
	}
	return emp, err
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = $1", employeeID))
}

type EmployeeListResult struct {
	Employees []Employee
	Total     int
}

func (s *Store) ListEmployees(ctx context.Context, departmentID, status string, limit, offset int) (EmployeeListResult, error) {
	query := "SELECT" + employeeColumns + " FROM employees WHERE 1=1"
	countQuery := "SELECT COUNT(1) FROM employees WHERE 1=1"
	var args []any
	if departmentID != "" {
		args = append(args, departmentID)
		clause := " AND department_id = $1"
		query += clause
		countQuery += clause
	}
	if status != "" {
		args = append(args, status)
		clause := " AND status = $" + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}

	var total int
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return EmployeeListResult{}, err
	}

	query += " ORDER BY last_name, first_name LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return EmployeeListResult{}, err
	}
	defer rows.Close()

	result := EmployeeListResult{Total: total}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.Phone, &emp.Gender, &emp.HireDate, &emp.Position,
			&emp.DepartmentID, &emp.ManagerID, &emp.BaseSalary,
			&emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return EmployeeListResult{}, err
		}
		result.Employees = append(result.Employees, emp)
	}
	return result, rows.Err()
}

func (s *Store) ListAllActive(ctx context.Context) ([]Employee, error) {
	result, err := s.ListEmployees(ctx, "", StatusActive, 10000, 0)
	if err != nil {
		return nil, err
	}
	return result.Employees, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, first_name, last_name, email, phone, gender, hire_date, position, department_id, manager_id, base_salary, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, NULLIF($10, '')::uuid, $11, $12)
    RETURNING id
  `, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone, strings.ToLower(emp.Gender),
		emp.HireDate, emp.Position, emp.DepartmentID, emp.ManagerID, emp.BaseSalary, StatusActive).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1, first_name = $2, last_name = $3, email = $4, phone = $5,
        gender = $6, hire_date = $7, position = $8,
        department_id = NULLIF($9, '')::uuid, manager_id = NULLIF($10, '')::uuid,
        base_salary = $11, updated_at = now()
    WHERE id = $12
  `, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		strings.ToLower(emp.Gender), emp.HireDate, emp.Position,
		emp.DepartmentID, emp.ManagerID, emp.BaseSalary, emp.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateEmployee is the only removal operation; records are never
// deleted.
func (s *Store) DeactivateEmployee(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET status = $1, updated_at = now() WHERE id = $2", StatusInactive, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(manager_id::text, ''), created_at
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.ManagerID, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name, managerID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, manager_id)
    VALUES ($1, NULLIF($2, '')::uuid)
    RETURNING id
  `, name, managerID).Scan(&id)
	return id, err
}

func (s *Store) UpdateDepartment(ctx context.Context, departmentID, name, managerID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE departments SET name = $1, manager_id = NULLIF($2, '')::uuid WHERE id = $3
  `, name, managerID, departmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, departmentID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", departmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
