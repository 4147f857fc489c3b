package auth

import (
	"context"
	"time"

	"juniorjoy/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, COALESCE(employee_id::text, ''), status, created_at
    FROM users
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.Status, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, COALESCE(employee_id::text, ''), status, created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.Status, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role, employeeID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id, status)
    VALUES ($1, $2, $3, NULLIF($4, '')::uuid, 'active')
    RETURNING id
  `, email, passwordHash, role, employeeID).Scan(&id)
	return id, err
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, role, COALESCE(employee_id::text, ''), status, created_at
    FROM users
    ORDER BY created_at
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.EmployeeID, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUserRole(ctx context.Context, userID, role string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, userID)
	return err
}

func (s *Store) UpdateUserStatus(ctx context.Context, userID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET status = $1 WHERE id = $2", status, userID)
	return err
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", hash, userID)
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}
