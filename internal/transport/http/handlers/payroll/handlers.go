package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

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
	r.Get("/calculate-salary/{employeeID}", h.handleCalculateSalary)
	r.Post("/update-salary", h.handleUpdateSalary)
	r.Get("/salary-slip/{employeeID}", h.handleSalarySlip)
}

// handleCalculateSalary is a read-only projection of the stored derived
// totals; the totals are maintained at save time, never recomputed here.
func (h *Handler) handleCalculateSalary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	u, err := h.Users.GetByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to calculate salary")
		return
	}
	api.Success(w, http.StatusOK, u.Salary, "Salary calculated successfully")
}

type updateSalaryRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	user.SalaryPatch
}

func (h *Handler) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	var payload updateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	salary, err := h.Users.UpdateSalary(r.Context(), payload.EmployeeID, payload.SalaryPatch)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update salary")
		return
	}
	api.Success(w, http.StatusOK, salary, "Salary updated successfully")
}

func (h *Handler) handleSalarySlip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	u, err := h.Users.GetByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to generate salary slip")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", u.FirstName, u.LastName, u.EmpID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s / %s", u.Department, u.Designation))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", u.Email))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic: %.2f", u.Salary.Basic))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total Earnings: %.2f", u.Salary.TotalEarnings))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total Deductions: %.2f", u.Salary.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary: %.2f", u.Salary.NetSalary))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "salary-slip-"+u.EmpID+".pdf"))
	if err := pdf.Output(w); err != nil {
		slog.Warn("salary slip render failed", "employeeId", employeeID, "err", err)
	}
}
