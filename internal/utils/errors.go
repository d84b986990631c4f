package utils

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status and a public error code from the service
// layer up to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewNotFoundError(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: msg}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: msg, Err: err}
}

func IsNotFound(err error) bool   { return hasCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }
func IsConflict(err error) bool   { return hasCode(err, ErrCodeConflict) }

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
