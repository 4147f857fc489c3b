package traininghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/training"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
	"juniorjoy/internal/transport/http/shared"
)

type Handler struct {
	Service *training.Service
}

func NewHandler(service *training.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/training/programs", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListPrograms)
		r.Get("/{programID}", h.handleGetProgram)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateProgram)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{programID}", h.handleUpdateProgram)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{programID}", h.handleDeleteProgram)
		r.Post("/{programID}/enroll", h.handleEnroll)
		r.Post("/{programID}/complete", h.handleComplete)
		r.Post("/{programID}/drop", h.handleDrop)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/{programID}/roster", h.handleRoster)
	})

	r.With(middleware.RequireUser).Get("/employees/{employeeID}/trainings", h.handleEmployeeTrainings)
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Service.ListPrograms(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "training_list_failed", "failed to list training programs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, programs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := h.Service.GetProgram(r.Context(), chi.URLParam(r, "programID"))
	if err != nil {
		if errors.Is(err, training.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "training program not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "training_fetch_failed", "failed to fetch training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, program, middleware.GetRequestID(r.Context()))
}

type programPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Capacity    int    `json:"capacity"`
}

func (p programPayload) toProgram(v *shared.Validator) training.Program {
	v.Required("title", p.Title, "title is required")
	if p.Capacity < 0 {
		v.Add("capacity", "must not be negative")
	}

	program := training.Program{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Capacity:    p.Capacity,
	}
	if p.StartDate != "" {
		if startDate, ok := v.Date("startDate", p.StartDate); ok {
			program.StartDate = &startDate
		}
	}
	if p.EndDate != "" {
		if endDate, ok := v.Date("endDate", p.EndDate); ok {
			program.EndDate = &endDate
		}
	}
	if program.StartDate != nil && program.EndDate != nil {
		v.DateOrder("startDate", *program.StartDate, "endDate", *program.EndDate)
	}
	return program
}

func (h *Handler) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var payload programPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	program := payload.toProgram(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateProgram(r.Context(), program)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "training_create_failed", "failed to create training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var payload programPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	program := payload.toProgram(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	program.ID = chi.URLParam(r, "programID")

	if err := h.Service.UpdateProgram(r.Context(), program); err != nil {
		if errors.Is(err, training.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "training program not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "training_update_failed", "failed to update training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": program.ID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "programID")
	if err := h.Service.DeleteProgram(r.Context(), programID); err != nil {
		if errors.Is(err, training.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "training program not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "training_delete_failed", "failed to delete training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": programID, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// enrollmentTarget decides whose enrollment a call operates on. Admins
// may pass employeeId in the body, everyone else acts on themselves.
func (h *Handler) enrollmentTarget(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	// Body is optional for self-service calls.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	employeeID := payload.EmployeeID
	if employeeID == "" {
		employeeID = user.EmployeeID
	}
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to manage this enrollment", middleware.GetRequestID(r.Context()))
		return "", false
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId is required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return employeeID, true
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.enrollmentTarget(w, r)
	if !ok {
		return
	}

	enrollment, err := h.Service.Enroll(r.Context(), chi.URLParam(r, "programID"), employeeID)
	if err != nil {
		switch {
		case errors.Is(err, training.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "training program not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, training.ErrProgramFull):
			api.Fail(w, http.StatusConflict, "conflict", "training program is full", middleware.GetRequestID(r.Context()))
		case errors.Is(err, training.ErrAlreadyEnrolled):
			api.Fail(w, http.StatusConflict, "conflict", "already enrolled in this program", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "training_enroll_failed", "failed to enroll", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, enrollment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, training.EnrollmentCompleted)
}

func (h *Handler) handleDrop(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, training.EnrollmentDropped)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	employeeID, ok := h.enrollmentTarget(w, r)
	if !ok {
		return
	}

	programID := chi.URLParam(r, "programID")
	if err := h.Service.SetEnrollmentStatus(r.Context(), programID, employeeID, status, time.Now()); err != nil {
		if errors.Is(err, training.ErrNotEnrolled) {
			api.Fail(w, http.StatusConflict, "conflict", "no active enrollment for this program", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "training_status_failed", "failed to update enrollment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"programId": programID, "employeeId": employeeID, "status": status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.Service.Roster(r.Context(), chi.URLParam(r, "programID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "training_roster_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roster, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeTrainings(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view these trainings", middleware.GetRequestID(r.Context()))
		return
	}

	enrollments, err := h.Service.EmployeeTrainings(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "training_history_failed", "failed to load trainings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, enrollments, middleware.GetRequestID(r.Context()))
}
