package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputePercentageComponents(t *testing.T) {
	components := []Component{
		{Code: "housing", Label: "Housing", Kind: KindAllowance, Method: MethodPercent, Value: dec("10")},
		{Code: "transport", Label: "Transport", Kind: KindAllowance, Method: MethodFixed, Value: dec("150")},
		{Code: "tax", Label: "Income Tax", Kind: KindDeduction, Method: MethodPercent, Value: dec("7.5")},
	}

	breakdown := Compute(dec("3000"), components)

	assert.True(t, breakdown.TotalAllowances.Equal(dec("450")), "allowances = %s", breakdown.TotalAllowances)
	assert.True(t, breakdown.TotalDeductions.Equal(dec("225")), "deductions = %s", breakdown.TotalDeductions)
	assert.True(t, breakdown.Gross.Equal(dec("3450")), "gross = %s", breakdown.Gross)
	assert.True(t, breakdown.Net.Equal(dec("3225")), "net = %s", breakdown.Net)
}

func TestComputeLinesRoundedToCents(t *testing.T) {
	components := []Component{
		{Code: "bonus", Label: "Bonus", Kind: KindAllowance, Method: MethodPercent, Value: dec("3.33")},
	}

	breakdown := Compute(dec("1000.10"), components)

	// 1000.10 * 3.33% = 33.303330 -> 33.30
	assert.True(t, breakdown.Lines[0].Amount.Equal(dec("33.30")), "line = %s", breakdown.Lines[0].Amount)
	assert.True(t, breakdown.Gross.Equal(dec("1033.40")), "gross = %s", breakdown.Gross)
}

func TestComputeNoComponents(t *testing.T) {
	breakdown := Compute(dec("2500"), nil)

	assert.True(t, breakdown.Gross.Equal(dec("2500")))
	assert.True(t, breakdown.Net.Equal(dec("2500")))
	assert.Empty(t, breakdown.Lines)
}

func TestComputeNetCanGoNegative(t *testing.T) {
	components := []Component{
		{Code: "garnish", Label: "Garnishment", Kind: KindDeduction, Method: MethodFixed, Value: dec("5000")},
	}

	breakdown := Compute(dec("1000"), components)
	assert.True(t, breakdown.Net.Equal(dec("-4000")), "net = %s", breakdown.Net)
}
