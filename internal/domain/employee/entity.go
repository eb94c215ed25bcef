package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Department string
	Position   string
	Status     Status
	Salary     decimal.Decimal
	HireDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
)

// ParseStatus validates a status string. Unknown values fail with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusActive, StatusOnLeave, StatusTerminated:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// FullName is always derived, never stored.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsActive checks if employee is currently working
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// LastTouched returns UpdatedAt when set, CreatedAt otherwise.
func (e *Employee) LastTouched() time.Time {
	if !e.UpdatedAt.IsZero() {
		return e.UpdatedAt
	}
	return e.CreatedAt
}
