package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type RequestsController struct {
	svc *services.RequestService
}

func NewRequestsController(svc *services.RequestService) *RequestsController {
	return &RequestsController{svc: svc}
}

// POST /requests
func (c *RequestsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, out)
}

// GET /requests?status=&tenant_id=&building_id=&issue_type=&priority=
func (c *RequestsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	f, msg := parseRequestFilter(r.URL.Query())
	if msg != "" {
		badQuery(w, msg)
		return
	}
	list, err := c.svc.List(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /requests/{id}
func (c *RequestsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}
	out, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// PUT /requests/{id}
func (c *RequestsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}
	var req dtos.UpdateRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// DELETE /requests/{id}
func (c *RequestsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /requests/{id}/assign
func (c *RequestsController) AssignHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "AssignHandler")

	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}
	var req dtos.AssignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.svc.Assign(r.Context(), id, req)
	if err != nil {
		logger.WithError(err).Debug("assign rejected")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// POST /requests/{id}/notes
func (c *RequestsController) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}
	var req dtos.AddNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.svc.AddNote(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// POST /requests/{id}/complete?staff_id=
// staff_id may also arrive in the JSON body.
func (c *RequestsController) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CompleteHandler")

	id, ok := pathID(w, r, "Request")
	if !ok {
		return
	}

	var req dtos.CompleteAssignmentRequest
	if raw := r.URL.Query().Get("staff_id"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			badQuery(w, "staff_id must be a valid UUID")
			return
		}
		req.StaffID = staffID
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateStruct(w, r, &req) {
		return
	}

	out, err := c.svc.CompleteAssignment(r.Context(), id, req.StaffID)
	if err != nil {
		logger.WithError(err).Debug("completion rejected")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
