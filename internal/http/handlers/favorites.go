package handlers

import (
	"context"
	"errors"
	"net/http"

	"catalog-api/internal/db"
	"catalog-api/internal/models"
)

type FavoriteHandler struct {
	users      UserStore
	planets    PlanetStore
	characters CharacterStore
	favorites  FavoriteStore
}

func NewFavoriteHandler(store Store) *FavoriteHandler {
	return &FavoriteHandler{
		users:      store,
		planets:    store,
		characters: store,
		favorites:  store,
	}
}

// resolveFunc looks up the favorite target with the given id and returns it
// with its display name.
type resolveFunc func(ctx context.Context, id int) (models.FavoriteTarget, string, error)

func (h *FavoriteHandler) resolvePlanet(ctx context.Context, id int) (models.FavoriteTarget, string, error) {
	planet, err := h.planets.GetPlanetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("Planet %d not found.", id)
		}
		return nil, "", err
	}
	return models.PlanetTarget{ID: planet.ID}, planet.Name, nil
}

func (h *FavoriteHandler) resolveCharacter(ctx context.Context, id int) (models.FavoriteTarget, string, error) {
	character, err := h.characters.GetCharacterByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("Character %d not found.", id)
		}
		return nil, "", err
	}
	return models.CharacterTarget{ID: character.ID}, character.Name, nil
}

func (h *FavoriteHandler) AddPlanet(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "planet_id", h.resolvePlanet)
}

func (h *FavoriteHandler) AddCharacter(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "character_id", h.resolveCharacter)
}

func (h *FavoriteHandler) RemovePlanet(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "planet_id", h.resolvePlanet)
}

func (h *FavoriteHandler) RemoveCharacter(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "character_id", h.resolveCharacter)
}

// lookup resolves the user and the target named by the request path.
func (h *FavoriteHandler) lookup(r *http.Request, param string, resolve resolveFunc) (*models.User, models.FavoriteTarget, string, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, nil, "", err
	}
	targetID, err := pathID(r, param)
	if err != nil {
		return nil, nil, "", err
	}

	ctx := r.Context()
	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("User %d not found.", userID)
		}
		return nil, nil, "", err
	}
	target, name, err := resolve(ctx, targetID)
	if err != nil {
		return nil, nil, "", err
	}
	return user, target, name, nil
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request, param string, resolve resolveFunc) {
	user, target, name, err := h.lookup(r, param, resolve)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	duplicate := BadRequest("User %s already has %s %s as a favorite.", user.Username, target.Kind(), name)
	_, err = h.favorites.FindFavorite(ctx, user.ID, target)
	switch {
	case err == nil:
		WriteError(w, r, duplicate)
		return
	case !errors.Is(err, db.ErrNotFound):
		WriteError(w, r, err)
		return
	}

	if _, err := h.favorites.AddFavorite(ctx, user.ID, target); err != nil {
		if errors.Is(err, db.ErrConflict) {
			err = duplicate
		}
		WriteError(w, r, err)
		return
	}

	h.writeUser(w, r, user.ID, "")
}

func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request, param string, resolve resolveFunc) {
	user, target, name, err := h.lookup(r, param, resolve)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.favorites.DeleteFavorite(r.Context(), user.ID, target); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = BadRequest("User %s does not have %s %s as a favorite.", user.Username, target.Kind(), name)
		}
		WriteError(w, r, err)
		return
	}

	h.writeUser(w, r, user.ID, "Favorite "+target.Kind()+" "+name+" removed.")
}

// writeUser reloads the user so the response reflects the change. A non-empty
// message wraps the user as {"message": ..., "user": ...}.
func (h *FavoriteHandler) writeUser(w http.ResponseWriter, r *http.Request, userID int, message string) {
	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if message == "" {
		WriteJSON(w, http.StatusOK, user)
		return
	}
	WriteJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}{message, user})
}
