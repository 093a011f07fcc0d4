package handlers

import (
	"errors"
	"net/http"

	"catalog-api/internal/db"
	"catalog-api/internal/models"

	"github.com/gorilla/mux"
)

// CharacterHandler serves the /people endpoints.
type CharacterHandler struct {
	store   CharacterStore
	planets PlanetStore
}

func NewCharacterHandler(store CharacterStore, planets PlanetStore) *CharacterHandler {
	return &CharacterHandler{store: store, planets: planets}
}

func (h *CharacterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		PlanetID    *int    `json:"planet_id"`
	}
	if err := decodePayload(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := requireFields(
		field{"name", req.Name != nil},
		field{"description", req.Description != nil},
		field{"image_url", req.ImageURL != nil},
		field{"planet_id", req.PlanetID != nil},
	); err != nil {
		WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	taken, err := h.store.CharacterNameExists(ctx, *req.Name)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if taken {
		WriteError(w, r, BadRequest("Character %s already exists.", *req.Name))
		return
	}

	if _, err := h.planets.GetPlanetByID(ctx, *req.PlanetID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = h.unknownPlanet(r, *req.PlanetID)
		}
		WriteError(w, r, err)
		return
	}

	character := &models.Character{
		Name:        *req.Name,
		Description: *req.Description,
		ImageURL:    *req.ImageURL,
		PlanetID:    req.PlanetID,
	}
	if err := h.store.CreateCharacter(ctx, character); err != nil {
		switch {
		case errors.Is(err, db.ErrConflict):
			err = BadRequest("Character %s already exists.", character.Name)
		case errors.Is(err, db.ErrNotFound):
			// planet deleted between the check and the insert
			err = h.unknownPlanet(r, *req.PlanetID)
		}
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, character)
}

// unknownPlanet builds the 400 for a dangling planet_id, listing the planets
// that do exist.
func (h *CharacterHandler) unknownPlanet(r *http.Request, planetID int) error {
	planets, err := h.planets.ListPlanetsSlim(r.Context())
	if err != nil {
		return err
	}
	apiErr := BadRequest("Planet %d does not exist.", planetID)
	apiErr.Details = map[string]any{"planets": planets}
	return apiErr
}

func (h *CharacterHandler) GetCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.store.ListCharacters(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"people": characters})
}

func (h *CharacterHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	character, err := h.store.GetCharacterByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("Character %s not found.", name)
		}
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, character)
}
