package models

import "time"

type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	IsActive     bool       `json:"is_active"`
	Favorites    Favorites  `json:"favorites"`
	Posts        []PostSlim `json:"posts"`
}

// NewUser returns a user with empty, non-nil relation collections so that a
// freshly created user serializes as {"favorites": {"planets": [], "people": []}, "posts": []}.
func NewUser() *User {
	return &User{
		IsActive:  true,
		Favorites: NewFavorites(),
		Posts:     []PostSlim{},
	}
}
