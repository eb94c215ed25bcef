package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Code {
	case apperror.CodeNotFound:
		NotFound(w, appErr.Message)
	case apperror.CodeUnauthenticated:
		Unauthorized(w, appErr.Message)
	case apperror.CodeForbidden:
		Forbidden(w, appErr.Message)
	case apperror.CodeInvalidInput:
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    apperror.CodeInvalidInput,
				Message: appErr.Message,
			},
		})
	case apperror.CodeConflict, apperror.CodeSuperseded:
		Conflict(w, appErr.Message)
	case apperror.CodeTimeout:
		GatewayTimeout(w, appErr.Message)
	case apperror.CodeStoreUnavailable:
		ServiceUnavailable(w, appErr.Message)
	case apperror.CodeCanceled:
		// the client is gone; nothing will read the body
		slog.Debug("request canceled", "error", err)
		ClientClosedRequest(w, appErr.Message)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
