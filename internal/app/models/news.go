package models

import "time"

// NewsSubtitle is one illustrated section of a news article
type NewsSubtitle struct {
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// News defines the news document based on the 'news' table
type News struct {
	ID        string         `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Subtitles []NewsSubtitle `json:"subtitles" db:"subtitles"` // Stored as JSONB
	Author    string         `json:"author" db:"author"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}
