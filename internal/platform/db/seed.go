package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/platform/config"
)

type leaveTypeSeed struct {
	Code              string
	Label             string
	BaseAnnualDays    int
	GenderRestriction string
	ProRated          bool
}

var defaultLeaveTypes = []leaveTypeSeed{
	{Code: "annual", Label: "Annual Leave", BaseAnnualDays: 30, GenderRestriction: "", ProRated: true},
	{Code: "sick", Label: "Sick Leave", BaseAnnualDays: 14, GenderRestriction: "", ProRated: false},
	{Code: "maternity", Label: "Maternity Leave", BaseAnnualDays: 90, GenderRestriction: "female", ProRated: false},
	{Code: "paternity", Label: "Paternity Leave", BaseAnnualDays: 7, GenderRestriction: "male", ProRated: false},
	{Code: "unpaid", Label: "Unpaid Leave", BaseAnnualDays: 0, GenderRestriction: "", ProRated: false},
}

type componentSeed struct {
	Code   string
	Label  string
	Kind   string
	Method string
	Value  string
}

var defaultComponents = []componentSeed{
	{Code: "housing", Label: "Housing Allowance", Kind: "allowance", Method: "percent", Value: "10"},
	{Code: "transport", Label: "Transport Allowance", Kind: "allowance", Method: "fixed", Value: "150"},
	{Code: "tax", Label: "Income Tax", Kind: "deduction", Method: "percent", Value: "7.5"},
	{Code: "pension", Label: "Pension Contribution", Kind: "deduction", Method: "percent", Value: "5"},
}

// Seed makes sure the reference data and the bootstrap admin account
// exist. It is safe to run on every startup.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}
	if err := ensurePayrollComponents(ctx, pool); err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	for _, lt := range defaultLeaveTypes {
		_, err := pool.Exec(ctx, `
      INSERT INTO leave_types (code, label, base_annual_days, gender_restriction, pro_rated)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (code) DO NOTHING
    `, lt.Code, lt.Label, lt.BaseAnnualDays, lt.GenderRestriction, lt.ProRated)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensurePayrollComponents(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_components").Scan(&count); err != nil {
		return err
	}
	// Component definitions are admin-editable, only seed an empty table.
	if count > 0 {
		return nil
	}

	for _, comp := range defaultComponents {
		_, err := pool.Exec(ctx, `
      INSERT INTO payroll_components (code, label, kind, method, value)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (code) DO NOTHING
    `, comp.Code, comp.Label, comp.Kind, comp.Method, comp.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, status)
    VALUES ($1, $2, $3, 'active')
  `, email, hash, auth.RoleAdmin)
	return err
}
