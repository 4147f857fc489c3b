package training

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"juniorjoy/internal/platform/querier"
)

var (
	ErrNotFound        = errors.New("training program not found")
	ErrProgramFull     = errors.New("training program is full")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotEnrolled     = errors.New("not enrolled")
)

type Service struct {
	DB querier.Querier
}

func NewService(q querier.Querier) *Service {
	return &Service{DB: q}
}

func (s *Service) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.title, COALESCE(p.description, ''), p.start_date, p.end_date, p.capacity,
           (SELECT COUNT(1) FROM training_enrollments e WHERE e.program_id = p.id AND e.status = $1),
           p.created_at
    FROM training_programs p
    ORDER BY p.start_date NULLS LAST, p.title
  `, EnrollmentEnrolled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate, &p.Capacity, &p.Enrolled, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (s *Service) GetProgram(ctx context.Context, programID string) (Program, error) {
	var p Program
	err := s.DB.QueryRow(ctx, `
    SELECT p.id, p.title, COALESCE(p.description, ''), p.start_date, p.end_date, p.capacity,
           (SELECT COUNT(1) FROM training_enrollments e WHERE e.program_id = p.id AND e.status = $2),
           p.created_at
    FROM training_programs p
    WHERE p.id = $1
  `, programID, EnrollmentEnrolled).Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate, &p.Capacity, &p.Enrolled, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *Service) CreateProgram(ctx context.Context, p Program) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO training_programs (title, description, start_date, end_date, capacity)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, p.Title, p.Description, p.StartDate, p.EndDate, p.Capacity).Scan(&id)
	return id, err
}

func (s *Service) UpdateProgram(ctx context.Context, p Program) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE training_programs
    SET title = $1, description = $2, start_date = $3, end_date = $4, capacity = $5
    WHERE id = $6
  `, p.Title, p.Description, p.StartDate, p.EndDate, p.Capacity, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteProgram(ctx context.Context, programID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM training_programs WHERE id = $1", programID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Enroll adds an employee to a program, enforcing capacity.
func (s *Service) Enroll(ctx context.Context, programID, employeeID string) (Enrollment, error) {
	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return Enrollment{}, err
	}
	if program.Capacity > 0 && program.Enrolled >= program.Capacity {
		return Enrollment{}, ErrProgramFull
	}

	var existing int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM training_enrollments WHERE program_id = $1 AND employee_id = $2 AND status = $3
  `, programID, employeeID, EnrollmentEnrolled).Scan(&existing); err != nil {
		return Enrollment{}, err
	}
	if existing > 0 {
		return Enrollment{}, ErrAlreadyEnrolled
	}

	enrollment := Enrollment{ProgramID: programID, EmployeeID: employeeID, Status: EnrollmentEnrolled}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO training_enrollments (program_id, employee_id, status)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, programID, employeeID, EnrollmentEnrolled).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		return Enrollment{}, err
	}
	return enrollment, nil
}

// SetEnrollmentStatus marks an active enrollment completed or dropped.
func (s *Service) SetEnrollmentStatus(ctx context.Context, programID, employeeID, status string, now time.Time) error {
	var completedAt *time.Time
	if status == EnrollmentCompleted {
		completedAt = &now
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE training_enrollments
    SET status = $1, completed_at = $2
    WHERE program_id = $3 AND employee_id = $4 AND status = $5
  `, status, completedAt, programID, employeeID, EnrollmentEnrolled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotEnrolled
	}
	return nil
}

func (s *Service) Roster(ctx context.Context, programID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, program_id, employee_id, status, completed_at, created_at
    FROM training_enrollments
    WHERE program_id = $1
    ORDER BY created_at
  `, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (s *Service) EmployeeTrainings(ctx context.Context, employeeID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, program_id, employee_id, status, completed_at, created_at
    FROM training_enrollments
    WHERE employee_id = $1
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func scanEnrollments(rows pgx.Rows) ([]Enrollment, error) {
	var enrollments []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.EmployeeID, &e.Status, &e.CompletedAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
