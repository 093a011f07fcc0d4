package db

import (
	"context"
	"time"

	"catalog-api/internal/models"
)

const userColumns = "id, username, email, password_hash, created_at, is_active"

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := "INSERT INTO users (username, email, password_hash, created_at, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	err := db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.IsActive).Scan(&user.ID)
	return mapError("create user", err)
}

func (db *DB) UsernameExists(ctx context.Context, username string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM users WHERE username = $1", username)
}

func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM users WHERE email = $1", email)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.getUser(ctx, "username", username)
}

func (db *DB) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return db.getUser(ctx, "id", id)
}

// getUser loads one user with favorites and posts. column is always one of
// the package's own literals, never caller input.
func (db *DB) getUser(ctx context.Context, column string, value any) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + column + " = $1"
	user := models.NewUser()
	err := scanUser(db.QueryRowContext(ctx, query, value), user)
	if err != nil {
		return nil, mapError("get user", err)
	}
	if err := db.attachUserRelations(ctx, []*models.User{user}); err != nil {
		return nil, err
	}
	return user, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := models.NewUser()
		if err := scanUser(rows, user); err != nil {
			return nil, mapError("list users", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users", err)
	}
	rows.Close()

	if err := db.attachUserRelations(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, user *models.User) error {
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.IsActive)
	if err != nil {
		return err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return nil
}

// attachUserRelations fills Favorites and Posts for every user in users.
// One query per relation is issued regardless of len(users).
func (db *DB) attachUserRelations(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}

	byID := make(map[int]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var userID *int
	if len(users) == 1 {
		userID = &users[0].ID
	}

	favorites, err := db.listFavorites(ctx, userID)
	if err != nil {
		return err
	}
	for _, fav := range favorites {
		if u, ok := byID[fav.UserID]; ok {
			if err := u.Favorites.Add(fav); err != nil {
				return err
			}
		}
	}

	posts, err := db.listPosts(ctx, userID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if u, ok := byID[post.UserID]; ok {
			u.Posts = append(u.Posts, post.Slim())
		}
	}
	return nil
}
