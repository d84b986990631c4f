package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// Clock returns the current time. Services truncate to microseconds so values
// round-trip through Postgres unchanged.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// mapStoreError turns repository errors into AppErrors. entity names the
// resource in not-found messages, e.g. "Building".
func mapStoreError(err error, entity, action string) error {
	if err == nil {
		return nil
	}
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, pgx.ErrNoRows):
		return utils.NewNotFoundError(entity + " not found")
	case errors.Is(err, repositories.ErrRowVersionConflict):
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeRowVersionConflict,
			Message:    entity + " was modified concurrently, please retry",
			Err:        err,
		}
	case repositories.IsUniqueViolation(err):
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    entity + " conflicts with an existing record",
			Err:        err,
		}
	case repositories.IsForeignKeyViolation(err):
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    entity + " references a record that does not exist",
			Err:        err,
		}
	default:
		return utils.NewInternalError("Failed to "+action+" "+lowerFirst(entity), err)
	}
}

func notFound(entity string) error {
	return utils.NewNotFoundError(entity + " not found")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
