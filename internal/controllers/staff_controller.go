package controllers

import (
	"net/http"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type StaffController struct {
	svc *services.StaffService
}

func NewStaffController(svc *services.StaffService) *StaffController {
	return &StaffController{svc: svc}
}

// POST /staff
func (c *StaffController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateStaffRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	s, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, s)
}

// GET /staff?active=
func (c *StaffController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		f   repositories.StaffFilter
		msg string
	)
	if f.ListOptions, msg = parseListOptions(q); msg == "" {
		f.Active, msg = parseBoolParam(q, "active")
	}
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

// GET /staff/{id}
func (c *StaffController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Staff member")
	if !ok {
		return
	}
	s, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// PUT /staff/{id}
func (c *StaffController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Staff member")
	if !ok {
		return
	}
	var req dtos.UpdateStaffRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	s, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// DELETE /staff/{id} deactivates.
func (c *StaffController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Staff member")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
