package models

type Planet struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Characters  []Character `json:"characters"`
}

type PlanetSlim struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
