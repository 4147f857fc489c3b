package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/directory"
	"juniorjoy/internal/domain/payroll"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
	"juniorjoy/internal/transport/http/shared"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll/components", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))
		r.Get("/", h.handleListComponents)
		r.Put("/", h.handleUpsertComponent)
		r.Delete("/{code}", h.handleDeleteComponent)
	})

	r.With(middleware.RequireUser).Get("/employees/{employeeID}/payroll", h.handleBreakdown)
	r.With(middleware.RequireUser).Get("/employees/{employeeID}/payslip", h.handlePayslip)
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.Service.Components(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_components_failed", "failed to load payroll components", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, components, middleware.GetRequestID(r.Context()))
}

type componentPayload struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Method string `json:"method"`
	Value  string `json:"value"`
}

func (h *Handler) handleUpsertComponent(w http.ResponseWriter, r *http.Request) {
	var payload componentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("code", payload.Code, "code is required")
	v.Required("label", payload.Label, "label is required")
	v.Enum("kind", payload.Kind, []string{payroll.KindAllowance, payroll.KindDeduction}, "kind must be allowance or deduction")
	v.Enum("method", payload.Method, []string{payroll.MethodPercent, payroll.MethodFixed}, "method must be percent or fixed")

	value, err := decimal.NewFromString(payload.Value)
	if err != nil {
		v.Add("value", "must be a decimal number")
	} else if value.IsNegative() {
		v.Add("value", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	comp := payroll.Component{
		Code:   strings.ToLower(strings.TrimSpace(payload.Code)),
		Label:  strings.TrimSpace(payload.Label),
		Kind:   payload.Kind,
		Method: payload.Method,
		Value:  value,
	}
	if err := h.Service.CreateComponent(r.Context(), comp); err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_component_failed", "failed to save payroll component", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, comp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.Service.DeleteComponent(r.Context(), code); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll component not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"code": code, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this payroll", middleware.GetRequestID(r.Context()))
		return
	}

	emp, breakdown, err := h.Service.BreakdownFor(r.Context(), employeeID)
	if err != nil {
		h.failBreakdown(w, r, err)
		return
	}
	api.Success(w, map[string]any{
		"employee": map[string]any{
			"id":             emp.ID,
			"employeeNumber": emp.EmployeeNumber,
			"firstName":      emp.FirstName,
			"lastName":       emp.LastName,
			"position":       emp.Position,
		},
		"breakdown": breakdown,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this payslip", middleware.GetRequestID(r.Context()))
		return
	}

	period := r.URL.Query().Get("period")
	if !periodPattern.MatchString(period) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "period must be formatted as YYYY-MM", middleware.GetRequestID(r.Context()))
		return
	}

	filePath, err := h.Service.RenderPayslipPDF(r.Context(), employeeID, period)
	if err != nil {
		h.failBreakdown(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+period+`.pdf"`)
	http.ServeFile(w, r, filePath)
}

func (h *Handler) failBreakdown(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, payroll.ErrNoSalary):
		api.Fail(w, http.StatusConflict, "conflict", "employee has no base salary on record", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to compute payroll", middleware.GetRequestID(r.Context()))
	}
}
