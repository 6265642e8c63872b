package leave

import (
	"errors"
	"time"

	"staffsync/internal/domain/user"
)

var ErrNotFound = errors.New("leave not found")

const (
	StatusPending  = "pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	ActionApprove = "Approve"
	ActionReject  = "Reject"
)

// Leave references a user and carries the requested range as plain strings;
// no calendar validation is applied to the dates.
type Leave struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       string    `json:"date"`
	LeaveType  string    `json:"leaveType"`
	Reason     string    `json:"reason"`
	FromDate   string    `json:"fromDate"`
	ToDate     string    `json:"toDate"`
	Status     string    `json:"status"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Employee is the resolved display projection of the referenced user,
	// present on listings only.
	Employee *EmployeeRef `json:"employee,omitempty"`
}

type EmployeeRef struct {
	FirstName string          `json:"firstname"`
	LastName  string          `json:"lastname"`
	Salary    user.Salary     `json:"salary"`
	Todos     []user.TodoItem `json:"todos"`
}
