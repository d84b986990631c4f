package controllers

import (
	"net/http"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type TenantsController struct {
	svc *services.TenantService
}

func NewTenantsController(svc *services.TenantService) *TenantsController {
	return &TenantsController{svc: svc}
}

// POST /tenants
func (c *TenantsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// GET /tenants?unit_id=
func (c *TenantsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		f   repositories.TenantFilter
		msg string
	)
	if f.ListOptions, msg = parseListOptions(q); msg == "" {
		f.UnitID, msg = parseUUIDParam(q, "unit_id")
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

// GET /tenants/{id}
func (c *TenantsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Tenant")
	if !ok {
		return
	}
	t, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// PUT /tenants/{id}
func (c *TenantsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Tenant")
	if !ok {
		return
	}
	var req dtos.UpdateTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// DELETE /tenants/{id}
func (c *TenantsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Tenant")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
