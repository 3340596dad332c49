package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

// NewsService defines news article operations
type NewsService interface {
	List(ctx context.Context) ([]*models.News, error)
	Get(ctx context.Context, id string) (*models.News, error)
	Search(ctx context.Context, term string) ([]*models.News, error)
	// Create stores an article. author is used when the request names none.
	Create(ctx context.Context, req *dto.NewsRequest, author string) (*models.News, error)
	Update(ctx context.Context, id string, req *dto.NewsRequest) (*models.News, error)
	Delete(ctx context.Context, id string) error
}

type newsService struct {
	news   repositories.NewsRepository
	logger zerolog.Logger
}

// NewNewsService creates a NewsService
func NewNewsService(repos *repositories.Repositories, logger zerolog.Logger) NewsService {
	return &newsService{
		news:   repos.News,
		logger: logger.With().Str("service", "news").Logger(),
	}
}

func (s *newsService) List(ctx context.Context) ([]*models.News, error) {
	return s.news.FindAll(ctx)
}

func (s *newsService) Get(ctx context.Context, id string) (*models.News, error) {
	return s.news.FindByID(ctx, id)
}

func (s *newsService) Search(ctx context.Context, term string) ([]*models.News, error) {
	if strings.TrimSpace(term) == "" {
		return s.news.FindAll(ctx)
	}
	return s.news.Search(ctx, term)
}

func (s *newsService) Create(ctx context.Context, req *dto.NewsRequest, author string) (*models.News, error) {
	news := req.ToModel()
	if strings.TrimSpace(news.Author) == "" {
		news.Author = author
	}
	if err := news.Validate(); err != nil {
		return nil, err
	}
	if err := s.news.Create(ctx, news); err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", news.ID).Str("author", news.Author).Msg("News created")
	return news, nil
}

func (s *newsService) Update(ctx context.Context, id string, req *dto.NewsRequest) (*models.News, error) {
	current, err := s.news.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	news := req.ToModel()
	news.ID = current.ID
	news.CreatedAt = current.CreatedAt
	if strings.TrimSpace(news.Author) == "" {
		news.Author = current.Author
	}
	if err := news.Validate(); err != nil {
		return nil, err
	}
	if err := s.news.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	return s.news.Delete(ctx, id)
}
