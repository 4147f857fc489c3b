package attendancehandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"juniorjoy/internal/domain/attendance"
	"juniorjoy/internal/domain/leave"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
	"juniorjoy/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/clock-in", h.handleClockIn)
		r.Post("/clock-out", h.handleClockOut)
		r.Get("/records", h.handleListRecords)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusConflict, "conflict", "account is not linked to an employee record", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.ClockIn(r.Context(), user.EmployeeID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			api.Fail(w, http.StatusConflict, "conflict", "already clocked in", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_in_failed", "failed to clock in", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusConflict, "conflict", "account is not linked to an employee record", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.ClockOut(r.Context(), user.EmployeeID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			api.Fail(w, http.StatusConflict, "conflict", "no open attendance record to close", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_out_failed", "failed to clock out", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

// resolveRange reads employeeId/start/end query parameters, enforcing
// that non-admin callers only ever query their own records.
func (h *Handler) resolveRange(w http.ResponseWriter, r *http.Request) (string, time.Time, time.Time, bool) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID = user.EmployeeID
	}
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view these records", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId is required", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}

	v := shared.NewValidator()
	startDate, startOK := v.Date("start", r.URL.Query().Get("start"))
	endDate, endOK := v.Date("end", r.URL.Query().Get("end"))
	if startOK && endOK {
		v.DateOrder("start", startDate, "end", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return "", time.Time{}, time.Time{}, false
	}
	return employeeID, startDate, endDate, true
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	employeeID, startDate, endDate, ok := h.resolveRange(w, r)
	if !ok {
		return
	}

	records, err := h.Service.ListRecords(r.Context(), employeeID, startDate, endDate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, startDate, endDate, ok := h.resolveRange(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.RangeSummary(r.Context(), employeeID, startDate, endDate)
	if err != nil {
		if errors.Is(err, leave.ErrEndBeforeStart) {
			api.Fail(w, http.StatusBadRequest, "validation_error", "end date must not be before start date", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "attendance_summary_failed", "failed to summarise attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
