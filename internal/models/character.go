package models

// Character is serialized with keys in declaration order: id, name,
// description, image_url, planet_id.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	PlanetID    *int   `json:"planet_id"`
}

type CharacterSlim struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
