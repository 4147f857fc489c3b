package reportshandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/leave"
	"juniorjoy/internal/domain/reports"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Leave   *leave.Service
}

func NewHandler(service *reports.Service, leaveService *leave.Service) *Handler {
	return &Handler{Service: service, Leave: leaveService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))
		r.Get("/headcount", h.handleHeadcount)
		r.Get("/leave-usage", h.handleLeaveUsage)
		r.Get("/exports/employees.csv", h.handleEmployeesCSV)
		r.Get("/exports/leave-requests.csv", h.handleLeaveRequestsCSV)
	})
}

func (h *Handler) handleHeadcount(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.HeadcountByDepartment(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build headcount report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaveUsage(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Leave.UsageReport(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build leave usage report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeesCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.EmployeeExportRows(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export employees", middleware.GetRequestID(r.Context()))
		return
	}

	records := [][]string{{"employee_number", "first_name", "last_name", "email", "department", "position", "hire_date", "status"}}
	for _, row := range rows {
		hireDate := ""
		if row.HireDate != nil {
			hireDate = row.HireDate.Format("2006-01-02")
		}
		records = append(records, []string{
			row.EmployeeNumber, row.FirstName, row.LastName, row.Email,
			row.Department, row.Position, hireDate, row.Status,
		})
	}
	writeCSV(w, "employees.csv", records)
}

func (h *Handler) handleLeaveRequestsCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.LeaveExportRows(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export leave requests", middleware.GetRequestID(r.Context()))
		return
	}

	records := [][]string{{"id", "employee_email", "leave_type", "start_date", "end_date", "days", "status"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ID, row.EmployeeEmail, row.LeaveTypeCode,
			row.StartDate.Format("2006-01-02"), row.EndDate.Format("2006-01-02"),
			strconv.Itoa(row.Days), row.Status,
		})
	}
	writeCSV(w, "leave-requests.csv", records)
}

func writeCSV(w http.ResponseWriter, filename string, records [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		slog.Warn("write csv export", "file", filename, "err", err)
	}
}
