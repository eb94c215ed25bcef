package employee

import "github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.Wrap(apperror.ErrNotFound, "employee not found", nil)
	ErrInvalidStatus    = apperror.Wrap(apperror.ErrInvalidInput, "status must be ACTIVE, ON_LEAVE or TERMINATED", nil)
	ErrNegativeSalary   = apperror.Wrap(apperror.ErrInvalidInput, "salary must not be negative", nil)
	ErrEmailExists      = apperror.Wrap(apperror.ErrConflict, "email already registered", nil)
)
