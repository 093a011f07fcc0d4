package models

import "time"

type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostSlim struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func (p *Post) Slim() PostSlim {
	return PostSlim{ID: p.ID, Title: p.Title}
}
