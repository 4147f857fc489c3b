package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"juniorjoy/internal/platform/querier"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
)

type Service struct {
	DB querier.Querier
}

func NewService(q querier.Querier) *Service {
	return &Service{DB: q}
}

// ClockIn opens today's attendance record. At most one open record per
// employee is allowed.
func (s *Service) ClockIn(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	var open int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM attendance_records WHERE employee_id = $1 AND clock_out IS NULL
  `, employeeID).Scan(&open); err != nil {
		return Record{}, err
	}
	if open > 0 {
		return Record{}, ErrAlreadyClockedIn
	}

	rec := Record{EmployeeID: employeeID, WorkDate: truncateToDay(now), ClockIn: now}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, work_date, clock_in)
    VALUES ($1, $2, $3)
    RETURNING id
  `, employeeID, rec.WorkDate, now).Scan(&rec.ID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ClockOut closes the open record and stores the derived hours.
func (s *Service) ClockOut(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, clock_in
    FROM attendance_records
    WHERE employee_id = $1 AND clock_out IS NULL
    ORDER BY clock_in DESC
    LIMIT 1
  `, employeeID).Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ClockIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotClockedIn
	}
	if err != nil {
		return Record{}, err
	}

	hours, err := WorkedHours(rec.ClockIn, now)
	if err != nil {
		return Record{}, err
	}

	if _, err := s.DB.Exec(ctx, `
    UPDATE attendance_records SET clock_out = $1, hours = $2 WHERE id = $3
  `, now, hours, rec.ID); err != nil {
		return Record{}, err
	}
	rec.ClockOut = &now
	rec.Hours = &hours
	return rec, nil
}

func (s *Service) ListRecords(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, clock_in, clock_out, hours
    FROM attendance_records
    WHERE employee_id = $1 AND work_date >= $2 AND work_date <= $3
    ORDER BY work_date
  `, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ClockIn, &rec.ClockOut, &rec.Hours); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RangeSummary loads the records in range and aggregates them.
func (s *Service) RangeSummary(ctx context.Context, employeeID string, startDate, endDate time.Time) (Summary, error) {
	records, err := s.ListRecords(ctx, employeeID, startDate, endDate)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records, startDate, endDate)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
