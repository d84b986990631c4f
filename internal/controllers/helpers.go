package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

var validate = dtos.NewValidator()

// decodeAndValidate writes the 400 response itself and reports whether the
// handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return false
	}
	return validateStruct(w, r, dst)
}

func validateStruct(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := validate.StructCtx(r.Context(), v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", dtos.FormatValidationErrors(verrs), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return false
	}
	return true
}

// pathID parses {id}. An id that is not a UUID cannot name a stored entity,
// so it is reported as not found.
func pathID(w http.ResponseWriter, r *http.Request, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, entity+" not found", nil)
		return uuid.Nil, false
	}
	return id, true
}

func badQuery(w http.ResponseWriter, msg string) {
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, msg, nil)
}

func parseListOptions(q url.Values) (repositories.ListOptions, string) {
	opts := repositories.ListOptions{Limit: repositories.DefaultLimit}
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, "skip must be a non-negative integer"
		}
		opts.Skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > repositories.MaxLimit {
			return opts, "limit must be between 1 and " + strconv.Itoa(repositories.MaxLimit)
		}
		opts.Limit = n
	}
	return opts, ""
}

func parseUUIDParam(q url.Values, name string) (*uuid.UUID, string) {
	raw := q.Get(name)
	if raw == "" {
		return nil, ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, name + " must be a valid UUID"
	}
	return &id, ""
}

func parseBoolParam(q url.Values, name string) (*bool, string) {
	raw := q.Get(name)
	if raw == "" {
		return nil, ""
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, name + " must be true or false"
	}
	return &b, ""
}

func parseRequestFilter(q url.Values) (repositories.RequestFilter, string) {
	var f repositories.RequestFilter
	var msg string
	if f.ListOptions, msg = parseListOptions(q); msg != "" {
		return f, msg
	}
	if raw := q.Get("status"); raw != "" {
		s := models.RequestStatus(raw)
		if !s.IsValid() {
			return f, "status has an unknown value"
		}
		f.Status = &s
	}
	if raw := q.Get("priority"); raw != "" {
		p := models.Priority(raw)
		if !p.IsValid() {
			return f, "priority has an unknown value"
		}
		f.Priority = &p
	}
	if raw := q.Get("issue_type"); raw != "" {
		it := models.IssueType(raw)
		if !it.IsValid() {
			return f, "issue_type has an unknown value"
		}
		f.IssueType = &it
	}
	if f.TenantID, msg = parseUUIDParam(q, "tenant_id"); msg != "" {
		return f, msg
	}
	if f.BuildingID, msg = parseUUIDParam(q, "building_id"); msg != "" {
		return f, msg
	}
	return f, ""
}
