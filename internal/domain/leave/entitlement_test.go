package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []TypeDefinition{
	{Code: "annual", Label: "Annual Leave", BaseAnnualDays: 30, GenderRestriction: RestrictionNone, ProRated: true},
	{Code: "sick", Label: "Sick Leave", BaseAnnualDays: 14, GenderRestriction: RestrictionNone, ProRated: false},
	{Code: "maternity", Label: "Maternity Leave", BaseAnnualDays: 90, GenderRestriction: RestrictionFemale, ProRated: false},
	{Code: "paternity", Label: "Paternity Leave", BaseAnnualDays: 7, GenderRestriction: RestrictionMale, ProRated: false},
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDayCountInclusive(t *testing.T) {
	days, err := DayCount(date(2025, time.June, 1), date(2025, time.June, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	days, err = DayCount(date(2025, time.June, 1), date(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestDayCountEndBeforeStart(t *testing.T) {
	_, err := DayCount(date(2025, time.June, 3), date(2025, time.June, 1))
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestEntitlementPriorYearHireSkipsProRating(t *testing.T) {
	now := date(2025, time.August, 15)
	def := testCatalog[0]

	emp := Profile{HireDate: date(2023, time.November, 1), Gender: "male"}
	assert.Equal(t, 30, Entitlement(def, emp, now))
}

func TestEntitlementProRatedForCurrentYearHire(t *testing.T) {
	now := date(2025, time.August, 15)
	def := testCatalog[0]

	// Hired in June: 7 months remaining, round(30/12*7) = 18.
	emp := Profile{HireDate: date(2025, time.June, 10)}
	assert.Equal(t, 18, Entitlement(def, emp, now))

	// Hired in January: full year.
	emp = Profile{HireDate: date(2025, time.January, 2)}
	assert.Equal(t, 30, Entitlement(def, emp, now))

	// Hired in December: round(30/12*1) = 3.
	emp = Profile{HireDate: date(2025, time.December, 1)}
	assert.Equal(t, 3, Entitlement(def, emp, now))
}

func TestEntitlementMissingHireDateDefaultsToBase(t *testing.T) {
	now := date(2025, time.August, 15)
	def := testCatalog[0]

	assert.Equal(t, 30, Entitlement(def, Profile{}, now))
}

func TestEntitlementGenderRestrictionOverridesProRating(t *testing.T) {
	now := date(2025, time.August, 15)
	maternity := testCatalog[2]
	paternity := testCatalog[3]

	assert.Equal(t, 90, Entitlement(maternity, Profile{Gender: "female"}, now))
	assert.Equal(t, 0, Entitlement(maternity, Profile{Gender: "male"}, now))
	assert.Equal(t, 0, Entitlement(maternity, Profile{Gender: ""}, now))
	assert.Equal(t, 7, Entitlement(paternity, Profile{Gender: "Male"}, now))
	assert.Equal(t, 0, Entitlement(paternity, Profile{Gender: "female", HireDate: date(2025, time.June, 1)}, now))
}

func TestComputeBalanceSumsUsedAndPending(t *testing.T) {
	now := date(2025, time.August, 15)
	emp := Profile{HireDate: date(2022, time.March, 1), Gender: "female"}
	requests := []Request{
		{EmployeeID: "e1", LeaveTypeCode: "annual", Days: 3, Status: StatusApproved},
		{EmployeeID: "e1", LeaveTypeCode: "annual", Days: 5, Status: StatusApproved},
		{EmployeeID: "e1", LeaveTypeCode: "annual", Days: 2, Status: StatusPending},
		{EmployeeID: "e1", LeaveTypeCode: "annual", Days: 4, Status: StatusRejected},
		{EmployeeID: "e1", LeaveTypeCode: "sick", Days: 1, Status: StatusApproved},
		{EmployeeID: "e2", LeaveTypeCode: "annual", Days: 9, Status: StatusApproved},
	}

	balance := ComputeBalance(testCatalog, "annual", "e1", emp, requests, now)
	assert.Equal(t, 30, balance.Entitlement)
	assert.Equal(t, 8, balance.Used)
	assert.Equal(t, 2, balance.Pending)
	// Pending never reduces the remaining balance.
	assert.Equal(t, 22, balance.Remaining)
}

func TestComputeBalanceUnknownTypeIsZeroed(t *testing.T) {
	balance := ComputeBalance(testCatalog, "sabbatical", "e1", Profile{}, nil, date(2025, time.August, 15))
	assert.Equal(t, Balance{}, balance)
}

func TestComputeBalanceAllowsOverAllocationToGoNegative(t *testing.T) {
	now := date(2025, time.August, 15)
	requests := []Request{
		{EmployeeID: "e1", LeaveTypeCode: "sick", Days: 10, Status: StatusApproved},
		{EmployeeID: "e1", LeaveTypeCode: "sick", Days: 8, Status: StatusApproved},
	}

	balance := ComputeBalance(testCatalog, "sick", "e1", Profile{}, requests, now)
	assert.Equal(t, 18, balance.Used)
	assert.Equal(t, -4, balance.Remaining)
}
