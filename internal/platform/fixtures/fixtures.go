// Package fixtures loads a small deterministic demo dataset so a fresh
// install has something to click through. It never runs unless
// SEED_DEMO_DATA is set and it skips entirely when employees already
// exist.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/platform/querier"
)

type demoEmployee struct {
	Number     string
	FirstName  string
	LastName   string
	Gender     string
	HireDate   string
	Position   string
	Department string
	Salary     float64
}

var demoDepartments = []string{"Engineering", "People Operations", "Finance"}

var demoEmployees = []demoEmployee{
	{Number: "EMP-0001", FirstName: "Amara", LastName: "Okafor", Gender: "female", HireDate: "2022-03-14", Position: "Engineering Manager", Department: "Engineering", Salary: 5200},
	{Number: "EMP-0002", FirstName: "Kwame", LastName: "Mensah", Gender: "male", HireDate: "2023-01-09", Position: "Backend Engineer", Department: "Engineering", Salary: 3800},
	{Number: "EMP-0003", FirstName: "Lena", LastName: "Fischer", Gender: "female", HireDate: "2024-06-02", Position: "Frontend Engineer", Department: "Engineering", Salary: 3600},
	{Number: "EMP-0004", FirstName: "Tunde", LastName: "Adeyemi", Gender: "male", HireDate: "2021-11-22", Position: "HR Generalist", Department: "People Operations", Salary: 3100},
	{Number: "EMP-0005", FirstName: "Sofia", LastName: "Marques", Gender: "female", HireDate: "2023-08-28", Position: "Accountant", Department: "Finance", Salary: 3400},
}

func SeedDemo(ctx context.Context, q querier.Querier) error {
	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	departmentIDs := map[string]string{}
	for _, name := range demoDepartments {
		var id string
		err := q.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed department %s: %w", name, err)
		}
		departmentIDs[name] = id
	}

	employeeIDs := make([]string, 0, len(demoEmployees))
	for _, emp := range demoEmployees {
		hireDate, err := time.Parse("2006-01-02", emp.HireDate)
		if err != nil {
			return err
		}
		var id string
		err = q.QueryRow(ctx, `
      INSERT INTO employees (employee_number, first_name, last_name, email, gender, hire_date, position, department_id, base_salary, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active')
      RETURNING id
    `, emp.Number, emp.FirstName, emp.LastName,
			strings.ToLower(fmt.Sprintf("%s.%s@demo.juniorjoy.local", emp.FirstName, emp.LastName)),
			emp.Gender, hireDate, emp.Position, departmentIDs[emp.Department], emp.Salary).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", emp.Number, err)
		}
		employeeIDs = append(employeeIDs, id)
	}

	// First employee manages the rest of engineering.
	for _, i := range []int{1, 2} {
		if _, err := q.Exec(ctx, "UPDATE employees SET manager_id = $1 WHERE id = $2", employeeIDs[0], employeeIDs[i]); err != nil {
			return err
		}
	}

	if err := seedAccounts(ctx, q, employeeIDs); err != nil {
		return err
	}
	if err := seedLeave(ctx, q, employeeIDs); err != nil {
		return err
	}
	if err := seedTraining(ctx, q, employeeIDs); err != nil {
		return err
	}

	slog.Info("demo data loaded", "employees", len(employeeIDs))
	return nil
}

func seedAccounts(ctx context.Context, q querier.Querier, employeeIDs []string) error {
	accounts := []struct {
		Email    string
		Role     string
		Employee int
	}{
		{Email: "hr@demo.juniorjoy.local", Role: auth.RoleHR, Employee: 3},
		{Email: "employee@demo.juniorjoy.local", Role: auth.RoleEmployee, Employee: 1},
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		_, err := q.Exec(ctx, `
      INSERT INTO users (email, password_hash, role, employee_id, status)
      VALUES ($1, $2, $3, $4, 'active')
      ON CONFLICT (email) DO NOTHING
    `, acc.Email, hash, acc.Role, employeeIDs[acc.Employee])
		if err != nil {
			return err
		}
	}
	return nil
}

func seedLeave(ctx context.Context, q querier.Querier, employeeIDs []string) error {
	year := time.Now().Year()
	requests := []struct {
		Employee int
		Type     string
		Start    time.Time
		End      time.Time
		Days     int
		Status   string
	}{
		{Employee: 1, Type: "annual", Start: date(year, 2, 10), End: date(year, 2, 14), Days: 5, Status: "approved"},
		{Employee: 1, Type: "sick", Start: date(year, 4, 3), End: date(year, 4, 4), Days: 2, Status: "approved"},
		{Employee: 2, Type: "annual", Start: date(year, 7, 21), End: date(year, 7, 25), Days: 5, Status: "pending"},
		{Employee: 4, Type: "annual", Start: date(year, 3, 2), End: date(year, 3, 6), Days: 5, Status: "rejected"},
	}

	for _, req := range requests {
		_, err := q.Exec(ctx, `
      INSERT INTO leave_requests (employee_id, leave_type_code, start_date, end_date, days, status)
      VALUES ($1, $2, $3, $4, $5, $6)
    `, employeeIDs[req.Employee], req.Type, req.Start, req.End, req.Days, req.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTraining(ctx context.Context, q querier.Querier, employeeIDs []string) error {
	var programID string
	start := date(time.Now().Year(), 9, 1)
	end := date(time.Now().Year(), 9, 5)
	err := q.QueryRow(ctx, `
    INSERT INTO training_programs (title, description, start_date, end_date, capacity)
    VALUES ('Workplace Safety Basics', 'Mandatory onboarding safety course', $1, $2, 20)
    RETURNING id
  `, start, end).Scan(&programID)
	if err != nil {
		return err
	}

	for _, i := range []int{1, 2, 3} {
		_, err := q.Exec(ctx, `
      INSERT INTO training_enrollments (program_id, employee_id, status)
      VALUES ($1, $2, 'enrolled')
    `, programID, employeeIDs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
