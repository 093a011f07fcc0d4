package handlers

import (
	"errors"
	"net/http"

	"catalog-api/internal/db"
	"catalog-api/internal/models"

	"github.com/gorilla/mux"
)

type PlanetHandler struct {
	store PlanetStore
}

func NewPlanetHandler(store PlanetStore) *PlanetHandler {
	return &PlanetHandler{store: store}
}

func (h *PlanetHandler) CreatePlanet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := decodePayload(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := requireFields(
		field{"name", req.Name != nil},
		field{"description", req.Description != nil},
		field{"image_url", req.ImageURL != nil},
	); err != nil {
		WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	taken, err := h.store.PlanetNameExists(ctx, *req.Name)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if taken {
		WriteError(w, r, BadRequest("Planet %s already exists.", *req.Name))
		return
	}

	planet := &models.Planet{
		Name:        *req.Name,
		Description: *req.Description,
		ImageURL:    *req.ImageURL,
	}
	if err := h.store.CreatePlanet(ctx, planet); err != nil {
		if errors.Is(err, db.ErrConflict) {
			err = BadRequest("Planet %s already exists.", planet.Name)
		}
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, planet)
}

func (h *PlanetHandler) GetPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.store.ListPlanets(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"planets": planets})
}

func (h *PlanetHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	planet, err := h.store.GetPlanetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("Planet %s not found.", name)
		}
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, planet)
}
