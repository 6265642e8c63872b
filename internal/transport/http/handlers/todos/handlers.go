package todoshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/user"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Users *user.Store
}

func NewHandler(users *user.Store) *Handler {
	return &Handler{Users: users}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/add-todo", h.handleAddTodo)
	r.Post("/update-todo", h.handleUpdateTodo)
	r.Post("/delete-todo", h.handleDeleteTodo)
}

type addTodoRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Todo       string `json:"todo" validate:"required"`
}

func (h *Handler) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	var payload addTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	if err := h.Users.AddTodo(r.Context(), payload.EmployeeID, payload.Todo); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to add todo")
		return
	}
	h.respondWithCollection(w, r, "Todo added successfully")
}

type updateTodoRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	TodoID     string `json:"todoId" validate:"required"`
	Todo       string `json:"todo" validate:"required"`
}

func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var payload updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	if err := h.Users.UpdateTodo(r.Context(), payload.EmployeeID, payload.TodoID, payload.Todo); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "user not found")
		case errors.Is(err, user.ErrTodoNotFound):
			api.Fail(w, http.StatusNotFound, "todo not found")
		default:
			api.Fail(w, http.StatusInternalServerError, "failed to update todo")
		}
		return
	}
	h.respondWithCollection(w, r, "Todo updated successfully")
}

type deleteTodoRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	TodoID     string `json:"todoId" validate:"required"`
}

func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	var payload deleteTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	if err := h.Users.RemoveTodo(r.Context(), payload.EmployeeID, payload.TodoID); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "user not found")
		case errors.Is(err, user.ErrTodoNotFound):
			api.Fail(w, http.StatusNotFound, "todo not found")
		default:
			api.Fail(w, http.StatusInternalServerError, "failed to delete todo")
		}
		return
	}
	h.respondWithCollection(w, r, "Todo deleted successfully")
}

// Todo mutations answer with the complete user collection; clients rebuild
// their state from it.
func (h *Handler) respondWithCollection(w http.ResponseWriter, r *http.Request, message string) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	api.Success(w, http.StatusOK, users, message)
}
