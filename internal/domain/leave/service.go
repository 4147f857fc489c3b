package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"juniorjoy/internal/domain/directory"
)

var (
	ErrNotFound    = errors.New("leave request not found")
	ErrUnknownType = errors.New("unknown leave type")
	ErrNotPending  = errors.New("request is not pending")
)

type Service struct {
	Store     *Store
	Directory *directory.Store
}

func NewService(store *Store, dir *directory.Store) *Service {
	return &Service{Store: store, Directory: dir}
}

// Catalog loads the leave type reference table.
func (s *Service) Catalog(ctx context.Context) ([]TypeDefinition, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT code, label, base_annual_days, gender_restriction, pro_rated
    FROM leave_types
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalog []TypeDefinition
	for rows.Next() {
		var def TypeDefinition
		if err := rows.Scan(&def.Code, &def.Label, &def.BaseAnnualDays, &def.GenderRestriction, &def.ProRated); err != nil {
			return nil, err
		}
		catalog = append(catalog, def)
	}
	return catalog, rows.Err()
}

type RequestListResult struct {
	Requests []Request
	Total    int
}

func (s *Service) ListRequests(ctx context.Context, employeeID, status string, limit, offset int) (RequestListResult, error) {
	query := `
    SELECT id, employee_id, leave_type_code, start_date, end_date, days, COALESCE(reason, ''), status, COALESCE(decided_by::text, ''), created_at
    FROM leave_requests
    WHERE 1=1
  `
	countQuery := "SELECT COUNT(1) FROM leave_requests WHERE 1=1"
	var args []any
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND employee_id = $1"
		countQuery += " AND employee_id = $1"
	}
	if status != "" {
		args = append(args, status)
		clause := " AND status = $2"
		if len(args) == 1 {
			clause = " AND status = $1"
		}
		query += clause
		countQuery += clause
	}

	var total int
	if err := s.Store.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return RequestListResult{}, err
	}

	switch len(args) {
	case 0:
		query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	case 1:
		query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	default:
		query += " ORDER BY created_at DESC LIMIT $3 OFFSET $4"
	}
	args = append(args, limit, offset)

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return RequestListResult{}, err
	}
	defer rows.Close()

	result := RequestListResult{Total: total}
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeCode, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Status, &req.DecidedBy, &req.CreatedAt); err != nil {
			return RequestListResult{}, err
		}
		result.Requests = append(result.Requests, req)
	}
	return result, rows.Err()
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (Request, error) {
	var req Request
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_code, start_date, end_date, days, COALESCE(reason, ''), status, COALESCE(decided_by::text, ''), created_at
    FROM leave_requests
    WHERE id = $1
  `, requestID).Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeCode, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Status, &req.DecidedBy, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return req, ErrNotFound
	}
	return req, err
}

// CreateRequest validates the date range and leave type and inserts the
// request in pending state. The day count is derived server-side, never
// taken from the caller.
func (s *Service) CreateRequest(ctx context.Context, employeeID, leaveTypeCode, reason string, startDate, endDate time.Time) (Request, error) {
	days, err := DayCount(startDate, endDate)
	if err != nil {
		return Request{}, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return Request{}, err
	}
	if _, ok := findType(catalog, leaveTypeCode); !ok {
		return Request{}, ErrUnknownType
	}

	req := Request{
		EmployeeID:    employeeID,
		LeaveTypeCode: leaveTypeCode,
		StartDate:     startDate,
		EndDate:       endDate,
		Days:          days,
		Reason:        reason,
		Status:        StatusPending,
	}
	err = s.Store.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type_code, start_date, end_date, days, reason, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at
  `, employeeID, leaveTypeCode, startDate, endDate, days, reason, StatusPending).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// Decide transitions a pending request to approved or rejected. The
// update is guarded on the pending status so a request can only ever
// leave pending once, also under concurrent deciders.
func (s *Service) Decide(ctx context.Context, requestID, deciderUserID, status string) (Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return Request{}, ErrNotPending
	}

	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE id = $3 AND status = $4
  `, status, deciderUserID, requestID, StatusPending)
	if err != nil {
		return Request{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetRequest(ctx, requestID); err != nil {
			return Request{}, err
		}
		return Request{}, ErrNotPending
	}
	return s.GetRequest(ctx, requestID)
}

// DeletePending removes a request that has not been decided yet.
func (s *Service) DeletePending(ctx context.Context, requestID string) error {
	tag, err := s.Store.DB.Exec(ctx, `
    DELETE FROM leave_requests WHERE id = $1 AND status = $2
  `, requestID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetRequest(ctx, requestID); err != nil {
			return err
		}
		return ErrNotPending
	}
	return nil
}

func (s *Service) requestsForEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	result, err := s.ListRequests(ctx, employeeID, "", 10000, 0)
	if err != nil {
		return nil, err
	}
	return result.Requests, nil
}

func (s *Service) profileFor(ctx context.Context, employeeID string) (Profile, error) {
	emp, err := s.Directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{Gender: emp.Gender}
	if emp.HireDate != nil {
		profile.HireDate = *emp.HireDate
	}
	return profile, nil
}

// BalanceFor recomputes the balance for one employee and leave type
// fresh from the request store.
func (s *Service) BalanceFor(ctx context.Context, employeeID, leaveTypeCode string, now time.Time) (Balance, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return Balance{}, err
	}
	profile, err := s.profileFor(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}
	requests, err := s.requestsForEmployee(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}
	return ComputeBalance(catalog, leaveTypeCode, employeeID, profile, requests, now), nil
}

// BalanceSummary computes balances across every catalog entry.
func (s *Service) BalanceSummary(ctx context.Context, employeeID string, now time.Time) ([]TypeBalance, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileFor(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestsForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	summary := make([]TypeBalance, 0, len(catalog))
	for _, def := range catalog {
		summary = append(summary, TypeBalance{
			LeaveTypeCode: def.Code,
			Label:         def.Label,
			Balance:       ComputeBalance(catalog, def.Code, employeeID, profile, requests, now),
		})
	}
	return summary, nil
}

type UsageRow struct {
	LeaveTypeCode string `json:"leaveTypeCode"`
	TotalDays     int    `json:"totalDays"`
}

// UsageReport sums approved days per leave type across all employees.
func (s *Service) UsageReport(ctx context.Context) ([]UsageRow, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT leave_type_code, COALESCE(SUM(days), 0)
    FROM leave_requests
    WHERE status = $1
    GROUP BY leave_type_code
    ORDER BY leave_type_code
  `, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var row UsageRow
		if err := rows.Scan(&row.LeaveTypeCode, &row.TotalDays); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
