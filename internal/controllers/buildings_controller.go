package controllers

import (
	"net/http"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type BuildingsController struct {
	svc *services.BuildingService
}

func NewBuildingsController(svc *services.BuildingService) *BuildingsController {
	return &BuildingsController{svc: svc}
}

// POST /buildings
func (c *BuildingsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBuildingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// GET /buildings
func (c *BuildingsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	opts, msg := parseListOptions(r.URL.Query())
	if msg != "" {
		badQuery(w, msg)
		return
	}
	list, err := c.svc.List(r.Context(), opts)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /buildings/{id}
func (c *BuildingsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Building")
	if !ok {
		return
	}
	b, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// PUT /buildings/{id}
func (c *BuildingsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Building")
	if !ok {
		return
	}
	var req dtos.UpdateBuildingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// DELETE /buildings/{id}
func (c *BuildingsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Building")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
