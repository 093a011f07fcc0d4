package db

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-api/internal/models"
)

// targetColumn maps a favorite target to the foreign key column holding it.
func targetColumn(target models.FavoriteTarget) (string, error) {
	switch target.(type) {
	case models.PlanetTarget:
		return "planet_id", nil
	case models.CharacterTarget:
		return "character_id", nil
	default:
		return "", fmt.Errorf("unknown favorite target %T", target)
	}
}

// newTarget rebuilds the tagged target from the two nullable columns.
func newTarget(planetID, characterID sql.NullInt64) (models.FavoriteTarget, error) {
	switch {
	case planetID.Valid && !characterID.Valid:
		return models.PlanetTarget{ID: int(planetID.Int64)}, nil
	case characterID.Valid && !planetID.Valid:
		return models.CharacterTarget{ID: int(characterID.Int64)}, nil
	default:
		return nil, fmt.Errorf("favorite row must reference exactly one of planet or character")
	}
}

func (db *DB) AddFavorite(ctx context.Context, userID int, target models.FavoriteTarget) (*models.Favorite, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}
	fav := &models.Favorite{UserID: userID, Target: target}
	query := "INSERT INTO favorites (user_id, " + column + ") VALUES ($1, $2) RETURNING id"
	if err := db.QueryRowContext(ctx, query, userID, target.TargetID()).Scan(&fav.ID); err != nil {
		return nil, mapError("add favorite", err)
	}
	return fav, nil
}

func (db *DB) FindFavorite(ctx context.Context, userID int, target models.FavoriteTarget) (*models.Favorite, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}
	fav := &models.Favorite{UserID: userID, Target: target}
	query := "SELECT id FROM favorites WHERE user_id = $1 AND " + column + " = $2"
	if err := db.QueryRowContext(ctx, query, userID, target.TargetID()).Scan(&fav.ID); err != nil {
		return nil, mapError("find favorite", err)
	}
	return fav, nil
}

// DeleteFavorite removes the favorite linking userID to target. It returns
// ErrNotFound when no such favorite exists.
func (db *DB) DeleteFavorite(ctx context.Context, userID int, target models.FavoriteTarget) error {
	column, err := targetColumn(target)
	if err != nil {
		return err
	}
	query := "DELETE FROM favorites WHERE user_id = $1 AND " + column + " = $2"
	res, err := db.ExecContext(ctx, query, userID, target.TargetID())
	if err != nil {
		return mapError("delete favorite", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("delete favorite", err)
	}
	if n == 0 {
		return fmt.Errorf("delete favorite: %w", ErrNotFound)
	}
	return nil
}

// listFavorites returns favorites with their target names, restricted to
// userID when it is set.
func (db *DB) listFavorites(ctx context.Context, userID *int) ([]models.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.planet_id, f.character_id, COALESCE(p.name, c.name, '')
		FROM favorites f
		LEFT JOIN planets p ON p.id = f.planet_id
		LEFT JOIN characters c ON c.id = f.character_id`
	var args []any
	if userID != nil {
		query += " WHERE f.user_id = $1"
		args = append(args, *userID)
	}
	query += " ORDER BY f.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list favorites", err)
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var (
			fav                   models.Favorite
			planetID, characterID sql.NullInt64
		)
		if err := rows.Scan(&fav.ID, &fav.UserID, &planetID, &characterID, &fav.TargetName); err != nil {
			return nil, mapError("list favorites", err)
		}
		if fav.Target, err = newTarget(planetID, characterID); err != nil {
			return nil, fmt.Errorf("list favorites: favorite %d: %w", fav.ID, err)
		}
		favorites = append(favorites, fav)
	}
	return favorites, mapError("list favorites", rows.Err())
}
