package user

import "github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"

var (
	ErrNotLoggedIn                = apperror.Wrap(apperror.ErrUnauthenticated, "not logged in", nil)
	ErrManagingDirectorRequired   = apperror.Wrap(apperror.ErrForbidden, "managing director access required", nil)
	ErrProjectManagerRoleRequired = apperror.Wrap(apperror.ErrForbidden, "project manager or managing director access required", nil)
)
