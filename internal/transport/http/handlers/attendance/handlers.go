package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/attendance"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Attendance *attendance.Store
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Attendance: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/add-attendance", h.handleAddAttendance)
	r.Get("/attendanceData", h.handleAttendanceData)
	r.Post("/update-attendance", h.handleUpdateAttendance)
}

type addAttendanceRequest struct {
	Date    string   `json:"date" validate:"required"`
	Present []string `json:"present"`
	Absent  []string `json:"absent"`
}

func (h *Handler) handleAddAttendance(w http.ResponseWriter, r *http.Request) {
	var payload addAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	rec := attendance.Record{Date: payload.Date, Present: payload.Present, Absent: payload.Absent}
	id, err := h.Attendance.Create(r.Context(), &rec)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrOverlap):
			api.Fail(w, http.StatusBadRequest, "a user cannot be both present and absent")
		case errors.Is(err, attendance.ErrDuplicateDay):
			api.Fail(w, http.StatusConflict, "attendance already recorded for date")
		default:
			api.Fail(w, http.StatusInternalServerError, "failed to add attendance")
		}
		return
	}
	rec.ID = id
	api.Success(w, http.StatusCreated, rec, "Attendance added successfully")
}

func (h *Handler) handleAttendanceData(w http.ResponseWriter, r *http.Request) {
	records, err := h.Attendance.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch attendance")
		return
	}
	api.Success(w, http.StatusOK, records, "Attendance fetched successfully")
}

type updateAttendanceRequest struct {
	Date   string `json:"date" validate:"required"`
	ID     string `json:"id" validate:"required"`
	Action string `json:"action" validate:"required"`
}

func (h *Handler) handleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var payload updateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	rec, err := h.Attendance.Mark(r.Context(), payload.Date, payload.ID, payload.Action)
	if err != nil {
		if errors.Is(err, attendance.ErrInvalidAction) {
			api.Fail(w, http.StatusBadRequest, "action must be Present or Absent")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update attendance")
		return
	}
	api.Success(w, http.StatusOK, rec, "Attendance updated successfully")
}
