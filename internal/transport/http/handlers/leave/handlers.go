package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/leave"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Leaves *leave.Store
}

func NewHandler(leaves *leave.Store) *Handler {
	return &Handler{Leaves: leaves}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/apply-leave", h.handleApplyLeave)
	r.Get("/leavedata", h.handleLeaveData)
	r.Post("/leave-action", h.handleLeaveAction)
}

type applyLeaveRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	LeaveType  string `json:"leaveType" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	FromDate   string `json:"fromDate" validate:"required"`
	ToDate     string `json:"toDate" validate:"required"`
	Date       string `json:"date" validate:"required"`
}

func (h *Handler) handleApplyLeave(w http.ResponseWriter, r *http.Request) {
	var payload applyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	lv := leave.Leave{
		EmployeeID: payload.EmployeeID,
		Date:       payload.Date,
		LeaveType:  payload.LeaveType,
		Reason:     payload.Reason,
		FromDate:   payload.FromDate,
		ToDate:     payload.ToDate,
	}
	id, err := h.Leaves.Create(r.Context(), &lv)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to apply leave")
		return
	}

	created, err := h.Leaves.Get(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to apply leave")
		return
	}
	api.Success(w, http.StatusCreated, created, "Leave applied successfully")
}

func (h *Handler) handleLeaveData(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Leaves.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch leaves")
		return
	}
	api.Success(w, http.StatusOK, leaves, "Leave fetched successfully")
}

type leaveActionRequest struct {
	ID      string `json:"id" validate:"required"`
	Action  string `json:"action" validate:"required"`
	Comment string `json:"comment"`
}

func (h *Handler) handleLeaveAction(w http.ResponseWriter, r *http.Request) {
	var payload leaveActionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	if err := h.Leaves.Decide(r.Context(), payload.ID, payload.Action, payload.Comment); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "leave not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update leave")
		return
	}

	// The decision response mirrors the listing: full collection with the
	// referenced users resolved.
	leaves, err := h.Leaves.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch leaves")
		return
	}
	api.Success(w, http.StatusOK, leaves, "Leave updated successfully")
}
