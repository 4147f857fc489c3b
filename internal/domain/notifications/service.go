package notifications

import (
	"context"
	"time"

	"juniorjoy/internal/platform/querier"
)

const (
	TypeLeaveSubmitted = "leave.submitted"
	TypeLeaveApproved  = "leave.approved"
	TypeLeaveRejected  = "leave.rejected"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	DB querier.Querier
}

func New(q querier.Querier) *Service {
	return &Service{DB: q}
}

func (s *Service) Create(ctx context.Context, userID, notifType, title, body string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body)
    VALUES ($1, $2, $3, $4)
  `, userID, notifType, title, body)
	return err
}

func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error) {
	query := `
    SELECT id, user_id, type, title, body, read, created_at
    FROM notifications
    WHERE user_id = $1
  `
	if unreadOnly {
		query += " AND read = false"
	}
	query += " ORDER BY created_at DESC LIMIT $2"

	rows, err := s.DB.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
  `, notificationID, userID)
	return err
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE notifications SET read = true WHERE user_id = $1", userID)
	return err
}

// AdminUserIDs lists users who should receive approval notifications.
func (s *Service) AdminUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id FROM users WHERE role IN ('admin', 'hr') AND status = 'active'
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserIDForEmployee resolves the login account of an employee, if any.
func (s *Service) UserIDForEmployee(ctx context.Context, employeeID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM users WHERE employee_id = $1 AND status = 'active' LIMIT 1
  `, employeeID).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}
