package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 66.67, Round2(200.0/3.0))
	require.Equal(t, 0.0, Round2(0))
	require.Equal(t, 1.5, Round2(1.499999))
}

func TestBuildPostgresURL(t *testing.T) {
	u, err := BuildPostgresURL("db", "5432", "maintenance", "app", "p@ss/word", "disable")
	require.NoError(t, err)
	require.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/maintenance?sslmode=disable", u)

	_, err = BuildPostgresURL("", "5432", "maintenance", "app", "", "")
	require.Error(t, err)
}

func TestHandleAppError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", NewNotFoundError("Building not found"), http.StatusNotFound, ErrCodeNotFound},
		{"validation", NewValidationError("No fields to update"), http.StatusBadRequest, ErrCodeValidation},
		{"conflict", NewConflictError("blocked"), http.StatusConflict, ErrCodeConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleAppError(rec, tc.err)
			require.Equal(t, tc.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), NewConflictError("x"))
	require.True(t, IsConflict(wrapped))
	require.False(t, IsNotFound(wrapped))
	require.True(t, IsValidation(NewValidationError("y")))
}
