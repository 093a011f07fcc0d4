package handlers

import (
	"errors"
	"net/http"

	"catalog-api/internal/db"
	"catalog-api/internal/models"
)

type PostHandler struct {
	users UserStore
	posts PostStore
}

func NewPostHandler(users UserStore, posts PostStore) *PostHandler {
	return &PostHandler{users: users, posts: posts}
}

type userPostsResponse struct {
	Message  string        `json:"message,omitempty"`
	Username string        `json:"username"`
	UserID   int           `json:"user_id"`
	Posts    []models.Post `json:"posts"`
}

func (h *PostHandler) pathUser(r *http.Request) (*models.User, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}
	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, NotFound("User %d not found.", userID)
		}
		return nil, err
	}
	return user, nil
}

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	user, err := h.pathUser(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	posts, err := h.posts.ListPostsByUser(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, userPostsResponse{
		Username: user.Username,
		UserID:   user.ID,
		Posts:    posts,
	})
}

// CreatePost resolves the user before reading the body, so a request for a
// missing user is rejected without touching the posts table.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.pathUser(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := decodePayload(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := requireFields(
		field{"title", req.Title != nil},
		field{"content", req.Content != nil},
	); err != nil {
		WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	post := &models.Post{Title: *req.Title, Content: *req.Content, UserID: user.ID}
	if err := h.posts.CreatePost(ctx, post); err != nil {
		WriteError(w, r, err)
		return
	}

	posts, err := h.posts.ListPostsByUser(ctx, user.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, userPostsResponse{
		Message:  "Post created.",
		Username: user.Username,
		UserID:   user.ID,
		Posts:    posts,
	})
}
