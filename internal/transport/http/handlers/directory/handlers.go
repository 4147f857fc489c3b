package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/directory"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
	"juniorjoy/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	// Employee routes stay flat because other handlers hang their own
	// subresources off /employees/{employeeID}.
	r.With(middleware.RequireUser).Get("/employees", h.handleListEmployees)
	r.With(middleware.RequireUser).Get("/employees/{employeeID}", h.handleGetEmployee)
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/employees", h.handleCreateEmployee)
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/employees/{employeeID}", h.handleUpdateEmployee)
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/employees/{employeeID}", h.handleDeactivateEmployee)

	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListDepartments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{departmentID}", h.handleDeleteDepartment)
	})

	r.With(middleware.RequireUser).Get("/org-chart", h.handleOrgChart)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	departmentID := r.URL.Query().Get("departmentId")
	status := r.URL.Query().Get("status")
	if status != "" && status != directory.StatusActive && status != directory.StatusInactive {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be active or inactive", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Store.ListEmployees(r.Context(), departmentID, status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"employees": result.Employees,
		"total":     result.Total,
		"limit":     page.Limit,
		"offset":    page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this employee", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_fetch_failed", "failed to fetch employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type employeePayload struct {
	EmployeeNumber string   `json:"employeeNumber"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Gender         string   `json:"gender"`
	HireDate       string   `json:"hireDate"`
	Position       string   `json:"position"`
	DepartmentID   string   `json:"departmentId"`
	ManagerID      string   `json:"managerId"`
	BaseSalary     *float64 `json:"baseSalary"`
}

func (p employeePayload) toEmployee(v *shared.Validator) directory.Employee {
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("lastName", p.LastName, "last name is required")
	v.Required("email", p.Email, "email is required")
	if p.Gender != "" {
		v.Enum("gender", p.Gender, []string{directory.GenderMale, directory.GenderFemale}, "gender must be male or female")
	}
	if p.BaseSalary != nil && *p.BaseSalary < 0 {
		v.Add("baseSalary", "must not be negative")
	}

	emp := directory.Employee{
		EmployeeNumber: strings.TrimSpace(p.EmployeeNumber),
		FirstName:      strings.TrimSpace(p.FirstName),
		LastName:       strings.TrimSpace(p.LastName),
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:          strings.TrimSpace(p.Phone),
		Gender:         strings.ToLower(p.Gender),
		Position:       strings.TrimSpace(p.Position),
		DepartmentID:   p.DepartmentID,
		ManagerID:      p.ManagerID,
		BaseSalary:     p.BaseSalary,
		Status:         directory.StatusActive,
	}
	if p.HireDate != "" {
		if hireDate, ok := v.Date("hireDate", p.HireDate); ok {
			emp.HireDate = &hireDate
		}
	}
	return emp
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	emp := payload.toEmployee(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusConflict, "conflict", "employee with this email or number already exists", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	emp := payload.toEmployee(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	emp.ID = employeeID

	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.DeactivateEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_deactivate_failed", "failed to deactivate employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": employeeID, "status": directory.StatusInactive}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

type departmentPayload struct {
	Name      string `json:"name"`
	ManagerID string `json:"managerId"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateDepartment(r.Context(), strings.TrimSpace(payload.Name), payload.ManagerID)
	if err != nil {
		api.Fail(w, http.StatusConflict, "conflict", "department already exists", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID := chi.URLParam(r, "departmentID")

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateDepartment(r.Context(), departmentID, strings.TrimSpace(payload.Name), payload.ManagerID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "department not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "department_update_failed", "failed to update department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": departmentID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID := chi.URLParam(r, "departmentID")
	if err := h.Store.DeleteDepartment(r.Context(), departmentID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "department not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusConflict, "conflict", "department still has employees assigned", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": departmentID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOrgChart(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListAllActive(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "org_chart_failed", "failed to build org chart", middleware.GetRequestID(r.Context()))
		return
	}
	roots := directory.BuildOrgChart(employees)
	api.Success(w, map[string]any{
		"roots":       roots,
		"generatedAt": time.Now().UTC(),
	}, middleware.GetRequestID(r.Context()))
}
