package handlers

import (
	"errors"
	"net/http"

	"catalog-api/internal/db"
	"catalog-api/internal/models"
	"catalog-api/internal/security"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := decodePayload(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := requireFields(
		field{"username", req.Username != nil},
		field{"email", req.Email != nil},
		field{"password", req.Password != nil},
	); err != nil {
		WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	taken, err := h.store.UsernameExists(ctx, *req.Username)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if taken {
		WriteError(w, r, BadRequest("Username %s already exists.", *req.Username))
		return
	}
	taken, err = h.store.EmailExists(ctx, *req.Email)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if taken {
		WriteError(w, r, BadRequest("Email %s already exists.", *req.Email))
		return
	}

	hash, err := security.HashPassword(*req.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		WriteError(w, r, BadRequest("Bad request, password must be at most %d bytes.", security.MaxPasswordLength))
		return
	}
	if err != nil {
		WriteError(w, r, err)
		return
	}

	user := models.NewUser()
	user.Username = *req.Username
	user.Email = *req.Email
	user.PasswordHash = hash

	if err := h.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrConflict) {
			err = BadRequest("Username %s or email %s already exists.", user.Username, user.Email)
		}
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	user, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = NotFound("User %s not found.", username)
		}
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
