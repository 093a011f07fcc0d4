package db

import (
	"context"
	"database/sql"

	"catalog-api/internal/models"
)

func (db *DB) CreatePlanet(ctx context.Context, planet *models.Planet) error {
	query := "INSERT INTO planets (name, description, image_url) VALUES ($1, $2, $3) RETURNING id"
	err := db.QueryRowContext(ctx, query, planet.Name, planet.Description, planet.ImageURL).Scan(&planet.ID)
	if err != nil {
		return mapError("create planet", err)
	}
	if planet.Characters == nil {
		planet.Characters = []models.Character{}
	}
	return nil
}

func (db *DB) PlanetNameExists(ctx context.Context, name string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM planets WHERE name = $1", name)
}

func (db *DB) GetPlanetByName(ctx context.Context, name string) (*models.Planet, error) {
	return db.getPlanet(ctx, "name", name)
}

func (db *DB) GetPlanetByID(ctx context.Context, id int) (*models.Planet, error) {
	return db.getPlanet(ctx, "id", id)
}

func (db *DB) getPlanet(ctx context.Context, column string, value any) (*models.Planet, error) {
	query := "SELECT id, name, description, image_url FROM planets WHERE " + column + " = $1"
	planet, err := scanPlanet(db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, mapError("get planet", err)
	}

	characters, err := db.listCharacters(ctx, "planet_id", planet.ID)
	if err != nil {
		return nil, err
	}
	planet.Characters = characters
	return planet, nil
}

func (db *DB) ListPlanets(ctx context.Context) ([]*models.Planet, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name, description, image_url FROM planets ORDER BY id")
	if err != nil {
		return nil, mapError("list planets", err)
	}
	defer rows.Close()

	planets := []*models.Planet{}
	byID := map[int]*models.Planet{}
	for rows.Next() {
		planet, err := scanPlanet(rows)
		if err != nil {
			return nil, mapError("list planets", err)
		}
		planets = append(planets, planet)
		byID[planet.ID] = planet
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list planets", err)
	}
	rows.Close()

	characters, err := db.listCharacters(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	for _, c := range characters {
		if c.PlanetID == nil {
			continue
		}
		if p, ok := byID[*c.PlanetID]; ok {
			p.Characters = append(p.Characters, c)
		}
	}
	return planets, nil
}

// ListPlanetsSlim returns every planet as {id, name}, ordered by id.
func (db *DB) ListPlanetsSlim(ctx context.Context) ([]models.PlanetSlim, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM planets ORDER BY id")
	if err != nil {
		return nil, mapError("list planets", err)
	}
	defer rows.Close()

	planets := []models.PlanetSlim{}
	for rows.Next() {
		var p models.PlanetSlim
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, mapError("list planets", err)
		}
		planets = append(planets, p)
	}
	return planets, mapError("list planets", rows.Err())
}

func scanPlanet(row scanner) (*models.Planet, error) {
	var (
		p                     models.Planet
		description, imageURL sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &imageURL); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Characters = []models.Character{}
	return &p, nil
}
