package handlers

import (
	"context"

	"catalog-api/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type PlanetStore interface {
	CreatePlanet(ctx context.Context, planet *models.Planet) error
	PlanetNameExists(ctx context.Context, name string) (bool, error)
	GetPlanetByName(ctx context.Context, name string) (*models.Planet, error)
	GetPlanetByID(ctx context.Context, id int) (*models.Planet, error)
	ListPlanets(ctx context.Context) ([]*models.Planet, error)
	ListPlanetsSlim(ctx context.Context) ([]models.PlanetSlim, error)
}

type CharacterStore interface {
	CreateCharacter(ctx context.Context, character *models.Character) error
	CharacterNameExists(ctx context.Context, name string) (bool, error)
	GetCharacterByName(ctx context.Context, name string) (*models.Character, error)
	GetCharacterByID(ctx context.Context, id int) (*models.Character, error)
	ListCharacters(ctx context.Context) ([]models.Character, error)
}

type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID int, target models.FavoriteTarget) (*models.Favorite, error)
	FindFavorite(ctx context.Context, userID int, target models.FavoriteTarget) (*models.Favorite, error)
	DeleteFavorite(ctx context.Context, userID int, target models.FavoriteTarget) error
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error)
}

// Store is everything the handlers need; *db.DB implements it.
type Store interface {
	UserStore
	PlanetStore
	CharacterStore
	FavoriteStore
	PostStore
}
