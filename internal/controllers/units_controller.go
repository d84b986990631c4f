package controllers

import (
	"net/http"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type UnitsController struct {
	svc *services.UnitService
}

func NewUnitsController(svc *services.UnitService) *UnitsController {
	return &UnitsController{svc: svc}
}

// POST /units
func (c *UnitsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, u)
}

// GET /units?building_id=
func (c *UnitsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		f   repositories.UnitFilter
		msg string
	)
	if f.ListOptions, msg = parseListOptions(q); msg == "" {
		f.BuildingID, msg = parseUUIDParam(q, "building_id")
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

// GET /units/{id}
func (c *UnitsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Unit")
	if !ok {
		return
	}
	u, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// PUT /units/{id}
func (c *UnitsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Unit")
	if !ok {
		return
	}
	var req dtos.UpdateUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// DELETE /units/{id}
func (c *UnitsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Unit")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
