package payroll

import "github.com/shopspring/decimal"

const (
	KindAllowance = "allowance"
	KindDeduction = "deduction"

	MethodPercent = "percent"
	MethodFixed   = "fixed"
)

// Component is one payroll element definition: either a fixed amount or
// a percentage of base salary.
type Component struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Kind   string          `json:"kind"`
	Method string          `json:"method"`
	Value  decimal.Decimal `json:"value"`
}

type Line struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

type Breakdown struct {
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	Gross           decimal.Decimal `json:"gross"`
	Net             decimal.Decimal `json:"net"`
	Lines           []Line          `json:"lines"`
}

// Compute derives the full pay breakdown from base salary and the
// component definitions. Percentage components are applied to the base
// salary only, never to other components. Each line is rounded to two
// decimal places before summing so the printed lines always add up to
// the totals.
func Compute(baseSalary decimal.Decimal, components []Component) Breakdown {
	breakdown := Breakdown{
		BaseSalary:      baseSalary,
		TotalAllowances: decimal.Zero,
		TotalDeductions: decimal.Zero,
		Lines:           make([]Line, 0, len(components)),
	}

	hundred := decimal.NewFromInt(100)
	for _, comp := range components {
		amount := comp.Value
		if comp.Method == MethodPercent {
			amount = baseSalary.Mul(comp.Value).Div(hundred)
		}
		amount = amount.Round(2)

		breakdown.Lines = append(breakdown.Lines, Line{
			Code:   comp.Code,
			Label:  comp.Label,
			Kind:   comp.Kind,
			Amount: amount,
		})

		switch comp.Kind {
		case KindAllowance:
			breakdown.TotalAllowances = breakdown.TotalAllowances.Add(amount)
		case KindDeduction:
			breakdown.TotalDeductions = breakdown.TotalDeductions.Add(amount)
		}
	}

	breakdown.Gross = baseSalary.Add(breakdown.TotalAllowances)
	breakdown.Net = breakdown.Gross.Sub(breakdown.TotalDeductions)
	return breakdown
}
