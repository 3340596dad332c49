package dto

import "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"

// NewsRequest represents the request body for creating or replacing a news article
type NewsRequest struct {
	Title     string                `json:"title" binding:"required,max=200"`
	Content   string                `json:"content" binding:"required"`
	Subtitles []models.NewsSubtitle `json:"subtitles"`
	Author    string                `json:"author" binding:"max=150"`
}

// ToModel builds a news article from the request
func (r *NewsRequest) ToModel() *models.News {
	subtitles := r.Subtitles
	if subtitles == nil {
		subtitles = []models.NewsSubtitle{}
	}
	return &models.News{
		Title:     r.Title,
		Content:   r.Content,
		Subtitles: subtitles,
		Author:    r.Author,
	}
}
