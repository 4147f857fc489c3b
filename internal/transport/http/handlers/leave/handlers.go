package leavehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/leave"
	"juniorjoy/internal/domain/notifications"
	"juniorjoy/internal/transport/http/api"
	"juniorjoy/internal/transport/http/middleware"
	"juniorjoy/internal/transport/http/shared"
)

type Handler struct {
	Service  *leave.Service
	Notifier *notifications.Service
}

func NewHandler(service *leave.Service, notifier *notifications.Service) *Handler {
	return &Handler{Service: service, Notifier: notifier}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireUser).Get("/leave-types", h.handleCatalog)

	r.Route("/leave-requests", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListRequests)
		r.Post("/", h.handleCreateRequest)
		r.Get("/{requestID}", h.handleGetRequest)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Patch("/{requestID}", h.handleDecideRequest)
		r.Delete("/{requestID}", h.handleDeleteRequest)
	})

	r.With(middleware.RequireUser).Get("/employees/{employeeID}/leave-balance", h.handleBalance)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.Service.Catalog(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to load leave types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, catalog, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	employeeID := r.URL.Query().Get("employeeId")
	status := r.URL.Query().Get("status")
	if status != "" && status != leave.StatusPending && status != leave.StatusApproved && status != leave.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be pending, approved or rejected", middleware.GetRequestID(r.Context()))
		return
	}

	// Employees only see their own history.
	if !user.CanAdminister() {
		employeeID = user.EmployeeID
		if employeeID == "" {
			api.Success(w, map[string]any{"requests": []leave.Request{}, "total": 0}, middleware.GetRequestID(r.Context()))
			return
		}
	}

	result, err := h.Service.ListRequests(r.Context(), employeeID, status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"requests": result.Requests,
		"total":    result.Total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	req, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_fetch_failed", "failed to fetch leave request", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessEmployee(req.EmployeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

type createRequestPayload struct {
	EmployeeID    string `json:"employeeId"`
	LeaveTypeCode string `json:"leaveTypeCode"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Reason        string `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	// Non-admin callers file for themselves regardless of the payload.
	if !user.CanAdminister() {
		payload.EmployeeID = user.EmployeeID
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.Required("leaveTypeCode", payload.LeaveTypeCode, "leave type is required")
	startDate, startOK := v.Date("startDate", payload.StartDate)
	endDate, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.CreateRequest(r.Context(), payload.EmployeeID, strings.ToLower(payload.LeaveTypeCode), payload.Reason, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrUnknownType):
			api.Fail(w, http.StatusBadRequest, "validation_error", "unknown leave type", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrEndBeforeStart):
			api.Fail(w, http.StatusBadRequest, "validation_error", "end date must not be before start date", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", middleware.GetRequestID(r.Context()))
		}
		return
	}

	h.notifyAdmins(r, notifications.TypeLeaveSubmitted, "New leave request",
		fmt.Sprintf("%d day(s) of %s requested", req.Days, req.LeaveTypeCode))

	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

type decidePayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleDecideRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var payload decidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Status != leave.StatusApproved && payload.Status != leave.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be approved or rejected", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Decide(r.Context(), requestID, user.UserID, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrNotPending):
			api.Fail(w, http.StatusConflict, "conflict", "request has already been decided", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to update leave request", middleware.GetRequestID(r.Context()))
		}
		return
	}

	h.notifyEmployee(r, req, payload.Status)

	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	req, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_delete_failed", "failed to delete leave request", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessEmployee(req.EmployeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to delete this request", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.DeletePending(r.Context(), requestID); err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrNotPending):
			api.Fail(w, http.StatusConflict, "conflict", "only pending requests can be deleted", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_delete_failed", "failed to delete leave request", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]string{"id": requestID, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.CanAccessEmployee(employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this balance", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	if leaveType := r.URL.Query().Get("type"); leaveType != "" {
		balance, err := h.Service.BalanceFor(r.Context(), employeeID, strings.ToLower(leaveType), now)
		if err != nil {
			h.failBalance(w, r, err)
			return
		}
		api.Success(w, balance, middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.BalanceSummary(r.Context(), employeeID, now)
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failBalance(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "leave_balance_failed", "failed to compute leave balance", middleware.GetRequestID(r.Context()))
}

// Notification failures are logged but never fail the request itself.
func (h *Handler) notifyAdmins(r *http.Request, notifType, title, body string) {
	if h.Notifier == nil {
		return
	}
	adminIDs, err := h.Notifier.AdminUserIDs(r.Context())
	if err != nil {
		slog.Warn("load admin users for notification", "err", err)
		return
	}
	for _, id := range adminIDs {
		if err := h.Notifier.Create(r.Context(), id, notifType, title, body); err != nil {
			slog.Warn("create notification", "user", id, "err", err)
		}
	}
}

func (h *Handler) notifyEmployee(r *http.Request, req leave.Request, status string) {
	if h.Notifier == nil {
		return
	}
	userID, err := h.Notifier.UserIDForEmployee(r.Context(), req.EmployeeID)
	if err != nil || userID == "" {
		return
	}
	notifType := notifications.TypeLeaveApproved
	title := "Leave request approved"
	if status == leave.StatusRejected {
		notifType = notifications.TypeLeaveRejected
		title = "Leave request rejected"
	}
	body := fmt.Sprintf("Your %s request for %d day(s) was %s", req.LeaveTypeCode, req.Days, status)
	if err := h.Notifier.Create(r.Context(), userID, notifType, title, body); err != nil {
		slog.Warn("create notification", "user", userID, "err", err)
	}
}
