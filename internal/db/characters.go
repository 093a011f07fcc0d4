package db

import (
	"context"
	"database/sql"

	"catalog-api/internal/models"
)

func (db *DB) CreateCharacter(ctx context.Context, character *models.Character) error {
	query := "INSERT INTO characters (name, description, image_url, planet_id) VALUES ($1, $2, $3, $4) RETURNING id"
	err := db.QueryRowContext(ctx, query, character.Name, character.Description, character.ImageURL, character.PlanetID).Scan(&character.ID)
	return mapError("create character", err)
}

func (db *DB) CharacterNameExists(ctx context.Context, name string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM characters WHERE name = $1", name)
}

func (db *DB) GetCharacterByName(ctx context.Context, name string) (*models.Character, error) {
	return db.getCharacter(ctx, "name", name)
}

func (db *DB) GetCharacterByID(ctx context.Context, id int) (*models.Character, error) {
	return db.getCharacter(ctx, "id", id)
}

func (db *DB) getCharacter(ctx context.Context, column string, value any) (*models.Character, error) {
	query := "SELECT id, name, description, image_url, planet_id FROM characters WHERE " + column + " = $1"
	c, err := scanCharacter(db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, mapError("get character", err)
	}
	return c, nil
}

func (db *DB) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return db.listCharacters(ctx, "", nil)
}

// listCharacters returns characters ordered by id. With an empty column every
// character is returned.
func (db *DB) listCharacters(ctx context.Context, column string, value any) ([]models.Character, error) {
	query := "SELECT id, name, description, image_url, planet_id FROM characters"
	var args []any
	if column != "" {
		query += " WHERE " + column + " = $1"
		args = append(args, value)
	}
	query += " ORDER BY id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list characters", err)
	}
	defer rows.Close()

	characters := []models.Character{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, mapError("list characters", err)
		}
		characters = append(characters, *c)
	}
	return characters, mapError("list characters", rows.Err())
}

func scanCharacter(row scanner) (*models.Character, error) {
	var (
		c                     models.Character
		description, imageURL sql.NullString
		planetID              sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &description, &imageURL, &planetID); err != nil {
		return nil, err
	}
	c.Description = description.String
	c.ImageURL = imageURL.String
	if planetID.Valid {
		id := int(planetID.Int64)
		c.PlanetID = &id
	}
	return &c, nil
}
