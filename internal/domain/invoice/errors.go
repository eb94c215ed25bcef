package invoice

import "github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"

var (
	ErrInvoiceNotFound = apperror.Wrap(apperror.ErrNotFound, "invoice not found", nil)
	ErrNegativeAmount  = apperror.Wrap(apperror.ErrInvalidInput, "amount must not be negative", nil)
)
