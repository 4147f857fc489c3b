package payroll

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"juniorjoy/internal/domain/directory"
	"juniorjoy/internal/platform/querier"
)

var ErrNoSalary = errors.New("employee has no base salary")

type Service struct {
	DB        querier.Querier
	Directory *directory.Store
	SlipDir   string
}

func NewService(q querier.Querier, dir *directory.Store) *Service {
	return &Service{DB: q, Directory: dir, SlipDir: "storage/payslips"}
}

// Components loads the payroll element definitions shared by every
// employee.
func (s *Service) Components(ctx context.Context) ([]Component, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT code, label, kind, method, value
    FROM payroll_components
    ORDER BY kind, code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		var comp Component
		if err := rows.Scan(&comp.Code, &comp.Label, &comp.Kind, &comp.Method, &comp.Value); err != nil {
			return nil, err
		}
		components = append(components, comp)
	}
	return components, rows.Err()
}

func (s *Service) CreateComponent(ctx context.Context, comp Component) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_components (code, label, kind, method, value)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label, kind = EXCLUDED.kind, method = EXCLUDED.method, value = EXCLUDED.value
  `, comp.Code, comp.Label, comp.Kind, comp.Method, comp.Value)
	return err
}

func (s *Service) DeleteComponent(ctx context.Context, code string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM payroll_components WHERE code = $1", code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// BreakdownFor computes the current pay breakdown for one employee from
// their base salary and the shared component definitions.
func (s *Service) BreakdownFor(ctx context.Context, employeeID string) (directory.Employee, Breakdown, error) {
	emp, err := s.Directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return directory.Employee{}, Breakdown{}, err
	}
	if emp.BaseSalary == nil {
		return emp, Breakdown{}, ErrNoSalary
	}

	components, err := s.Components(ctx)
	if err != nil {
		return emp, Breakdown{}, err
	}

	base := decimal.NewFromFloat(*emp.BaseSalary)
	return emp, Compute(base, components), nil
}

// RenderPayslipPDF writes a payslip for the employee's current
// breakdown and returns the file path.
func (s *Service) RenderPayslipPDF(ctx context.Context, employeeID, period string) (string, error) {
	emp, breakdown, err := s.BreakdownFor(ctx, employeeID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.SlipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.SlipDir, fmt.Sprintf("%s-%s.pdf", employeeID, period))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %s", breakdown.BaseSalary.StringFixed(2)))
	pdf.Ln(7)
	for _, line := range breakdown.Lines {
		sign := "+"
		if line.Kind == KindDeduction {
			sign = "-"
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s %s %s", line.Label, sign, line.Amount.StringFixed(2)))
		pdf.Ln(7)
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", breakdown.Gross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", breakdown.Net.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
