package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeRequest struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Status     string          `json:"status"`
	Salary     decimal.Decimal `json:"salary"`
	HireDate   *string         `json:"hire_date,omitempty"` // YYYY-MM-DD
}

func (r *EmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(strings.TrimSpace(r.Phone)) {
		errs.Add("phone", "phone must contain 7 to 15 digits")
	}
	if !validator.IsEmpty(r.Status) {
		if _, err := ParseStatus(r.Status); err != nil {
			errs.Add("status", ErrInvalidStatus.Message)
		}
	}
	if r.Salary.IsNegative() {
		errs.Add("salary", ErrNegativeSalary.Message)
	}
	if _, ok := validator.ParseOptionalDate(r.HireDate); !ok {
		errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

// ToEmployee converts a validated request. A blank status means ACTIVE.
func (r *EmployeeRequest) ToEmployee() Employee {
	status := StatusActive
	if st, err := ParseStatus(r.Status); err == nil {
		status = st
	}
	hireDate, _ := validator.ParseOptionalDate(r.HireDate)
	return Employee{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:      strings.TrimSpace(r.Phone),
		Department: strings.TrimSpace(r.Department),
		Position:   strings.TrimSpace(r.Position),
		Status:     status,
		Salary:     r.Salary,
		HireDate:   hireDate,
	}
}

type EmployeeResponse struct {
	ID         string           `json:"id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	FullName   string           `json:"full_name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Status     Status           `json:"status"`
	Salary     *decimal.Decimal `json:"salary,omitempty"` // finance roles only
	HireDate   *string          `json:"hire_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  *time.Time       `json:"updated_at,omitempty"`
}

// ToResponse renders emp; the salary is included only when withSalary is set.
func ToResponse(emp Employee, withSalary bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		FullName:   emp.FullName(),
		Email:      emp.Email,
		Phone:      emp.Phone,
		Department: emp.Department,
		Position:   emp.Position,
		Status:     emp.Status,
		CreatedAt:  emp.CreatedAt,
	}
	if withSalary {
		salary := emp.Salary
		resp.Salary = &salary
	}
	if emp.HireDate != nil {
		d := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	if !emp.UpdatedAt.IsZero() {
		u := emp.UpdatedAt
		resp.UpdatedAt = &u
	}
	return resp
}
