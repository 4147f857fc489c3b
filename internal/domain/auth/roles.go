package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// UserContext is the per-request session object derived from a verified
// token. It is carried on the request context and replaces any ambient
// auth state.
type UserContext struct {
	UserID     string
	EmployeeID string
	Role       string
}

// CanAdminister reports whether the role may manage records and decide
// other employees' leave requests.
func (u UserContext) CanAdminister() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

// CanAccessEmployee reports whether the session may read data belonging
// to the given employee.
func (u UserContext) CanAccessEmployee(employeeID string) bool {
	if u.CanAdminister() {
		return true
	}
	return u.EmployeeID != "" && u.EmployeeID == employeeID
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}
