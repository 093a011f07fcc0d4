package db

import (
	"context"
	"time"

	"catalog-api/internal/models"
)

func (db *DB) CreatePost(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	query := "INSERT INTO posts (title, content, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	err := db.QueryRowContext(ctx, query, post.Title, post.Content, post.UserID, post.CreatedAt, post.UpdatedAt).Scan(&post.ID)
	return mapError("create post", err)
}

func (db *DB) ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	return db.listPosts(ctx, &userID)
}

// listPosts returns posts ordered by id, restricted to userID when it is set.
func (db *DB) listPosts(ctx context.Context, userID *int) ([]models.Post, error) {
	query := "SELECT id, title, content, user_id, created_at, updated_at FROM posts"
	var args []any
	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}
	query += " ORDER BY id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list posts", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError("list posts", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		posts = append(posts, p)
	}
	return posts, mapError("list posts", rows.Err())
}
