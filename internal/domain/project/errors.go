package project

import "github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"

var (
	ErrProjectNotFound = apperror.Wrap(apperror.ErrNotFound, "project not found", nil)
	ErrInvalidStatus   = apperror.Wrap(apperror.ErrInvalidInput, "status must be PLANNING, IN_PROGRESS, COMPLETED, ON_HOLD or CANCELLED", nil)
	ErrInvalidPriority = apperror.Wrap(apperror.ErrInvalidInput, "priority must be LOW, MEDIUM, HIGH or CRITICAL", nil)
	ErrNegativeBudget  = apperror.Wrap(apperror.ErrInvalidInput, "budget and spent must not be negative", nil)
	ErrEndBeforeStart  = apperror.Wrap(apperror.ErrInvalidInput, "end date must not be before start date", nil)
)
