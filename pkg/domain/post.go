package domain

import "time"

// Post represents a single shared prediction in the feed
type Post struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	Odds       float64   `json:"odds"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Shares     int       `json:"shares"`
	User       Author    `json:"user"`
}

// Author is the profile summary embedded into each post
type Author struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// NewPost is the payload of a post insert, counters are always zero on creation
type NewPost struct {
	Content    string  `json:"content"`
	ImageURL   string  `json:"image_url,omitempty"`
	Odds       float64 `json:"odds"`
	Confidence int     `json:"confidence"`
}
