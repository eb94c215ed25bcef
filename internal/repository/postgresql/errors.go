package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

// mapStoreError translates driver failures into the store's error kinds.
// notFound is returned (wrapped) for pgx.ErrNoRows.
func mapStoreError(op string, err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(apperror.ErrTimeout, op, err)
	}

	if errors.Is(err, context.Canceled) {
		return apperror.Wrap(apperror.ErrCanceled, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return apperror.Wrap(apperror.ErrConflict, op, err)
		case checkViolationCode:
			return apperror.Wrap(apperror.ErrInvalidInput, op, err)
		}
	}

	return apperror.Wrap(apperror.ErrStoreUnavailable, op, err)
}
