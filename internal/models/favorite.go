package models

import "fmt"

// FavoriteTarget is the thing a favorite points at. The only implementations
// are PlanetTarget and CharacterTarget.
type FavoriteTarget interface {
	TargetID() int
	Kind() string
	isFavoriteTarget()
}

type PlanetTarget struct {
	ID int
}

func (t PlanetTarget) TargetID() int   { return t.ID }
func (t PlanetTarget) Kind() string    { return "planet" }
func (PlanetTarget) isFavoriteTarget() {}

type CharacterTarget struct {
	ID int
}

func (t CharacterTarget) TargetID() int   { return t.ID }
func (t CharacterTarget) Kind() string    { return "character" }
func (CharacterTarget) isFavoriteTarget() {}

type Favorite struct {
	ID     int
	UserID int
	Target FavoriteTarget
	// Name of the planet or character the target refers to.
	TargetName string
}

// Favorites is the grouped form embedded in a serialized user.
type Favorites struct {
	Planets []PlanetSlim    `json:"planets"`
	People  []CharacterSlim `json:"people"`
}

func NewFavorites() Favorites {
	return Favorites{
		Planets: []PlanetSlim{},
		People:  []CharacterSlim{},
	}
}

// Add places fav in the group matching its target.
func (f *Favorites) Add(fav Favorite) error {
	switch t := fav.Target.(type) {
	case PlanetTarget:
		f.Planets = append(f.Planets, PlanetSlim{ID: t.ID, Name: fav.TargetName})
	case CharacterTarget:
		f.People = append(f.People, CharacterSlim{ID: t.ID, Name: fav.TargetName})
	default:
		return fmt.Errorf("unknown favorite target %T", fav.Target)
	}
	return nil
}

func (f Favorites) Len() int {
	return len(f.Planets) + len(f.People)
}
