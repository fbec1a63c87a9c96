package domain

import "time"

// News represents a sports news entry published by a user
type News struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNews is the payload of a news insert
type NewNews struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
