package leave

import (
	"errors"
	"math"
	"strings"
	"time"
)

var ErrEndBeforeStart = errors.New("end date before start date")

// Profile carries the employee attributes the entitlement calculation
// depends on.
type Profile struct {
	HireDate time.Time
	Gender   string
}

// DayCount returns the inclusive whole-day count between start and end.
func DayCount(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1, nil
}

// Entitlement computes the annual entitlement for one leave type.
// Pro-rating applies only when the hire date falls in the current
// calendar year: round(base/12 * monthsRemaining) where monthsRemaining
// counts the hire month itself. A zero hire date degrades to the
// non-pro-rated base. A gender restriction overrides everything to 0
// when the employee does not match.
func Entitlement(def TypeDefinition, emp Profile, now time.Time) int {
	entitlement := def.BaseAnnualDays

	if def.ProRated && !emp.HireDate.IsZero() && emp.HireDate.Year() == now.Year() {
		monthsRemaining := 12 - int(emp.HireDate.Month()-time.January)
		entitlement = int(math.Round(float64(def.BaseAnnualDays) / 12 * float64(monthsRemaining)))
	}

	if def.GenderRestriction != "" && def.GenderRestriction != RestrictionNone {
		if !strings.EqualFold(emp.Gender, def.GenderRestriction) {
			return 0
		}
	}

	return entitlement
}

// ComputeBalance derives the full balance summary for one employee and
// leave type from the request collection. It is pure: no lookups, no
// side effects. An unknown leave type code yields a zeroed balance.
// Pending days are informational only and never reduce the remaining
// balance.
func ComputeBalance(catalog []TypeDefinition, code, employeeID string, emp Profile, requests []Request, now time.Time) Balance {
	def, ok := findType(catalog, code)
	if !ok {
		return Balance{}
	}

	balance := Balance{Entitlement: Entitlement(def, emp, now)}
	for _, req := range requests {
		if req.EmployeeID != employeeID || req.LeaveTypeCode != code {
			continue
		}
		switch req.Status {
		case StatusApproved:
			balance.Used += req.Days
		case StatusPending:
			balance.Pending += req.Days
		}
	}
	balance.Remaining = balance.Entitlement - balance.Used
	return balance
}

func findType(catalog []TypeDefinition, code string) (TypeDefinition, bool) {
	for _, def := range catalog {
		if def.Code == code {
			return def, true
		}
	}
	return TypeDefinition{}, false
}
