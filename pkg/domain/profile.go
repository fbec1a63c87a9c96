package domain

import "time"

// Profile represents a user identity known to the backend
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Author returns the summary embedded into posts
func (p Profile) Author() Author {
	return Author{Username: p.Username, AvatarURL: p.AvatarURL}
}
