package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// NewsController handles news articles
type NewsController struct {
	newsService services.NewsService
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// GetNews lists articles, newest first
// @Summary List news
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title or content fragment"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.News}
// @Router /news [get]
func (c *NewsController) GetNews(ctx *gin.Context) {
	news, err := c.newsService.Search(ctx, searchTerm(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, news)
}

// GetArticle retrieves an article
// @Summary Get a news article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} dto.APIResponse{data=models.News}
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/{id} [get]
func (c *NewsController) GetArticle(ctx *gin.Context) {
	article, err := c.newsService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, article, "")
}

// CreateArticle publishes an article. The author defaults to the logged-in username.
// @Summary Create a news article
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NewsRequest true "Article"
// @Success 201 {object} dto.APIResponse{data=models.News}
// @Failure 400 {object} dto.ErrorResponse
// @Router /news [post]
func (c *NewsController) CreateArticle(ctx *gin.Context) {
	var req dto.NewsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	article, err := c.newsService.Create(ctx, &req, middleware.Username(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, article, "News created successfully")
}

// UpdateArticle replaces an article
// @Summary Update a news article
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Param request body dto.NewsRequest true "Article"
// @Success 200 {object} dto.APIResponse{data=models.News}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/{id} [put]
func (c *NewsController) UpdateArticle(ctx *gin.Context) {
	var req dto.NewsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	article, err := c.newsService.Update(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, article, "News updated successfully")
}

// DeleteArticle deletes an article
// @Summary Delete a news article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/{id} [delete]
func (c *NewsController) DeleteArticle(ctx *gin.Context) {
	if err := c.newsService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "News deleted successfully")
}
