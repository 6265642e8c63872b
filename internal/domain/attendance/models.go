package attendance

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("attendance record not found")
	ErrDuplicateDay  = errors.New("attendance record already exists for date")
	ErrInvalidAction = errors.New("action must be Present or Absent")
	ErrOverlap       = errors.New("user listed as both present and absent")
)

const (
	ActionPresent = "Present"
	ActionAbsent  = "Absent"
)

// Record is the single attendance document for one calendar date: two
// disjoint sets of user ids. An id is never a member of both sets.
type Record struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Present   []string  `json:"present"`
	Absent    []string  `json:"absent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
