package memory

import (
	"context"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

type newsRepository struct {
	db *DB
}

// NewNewsRepository creates an in-memory NewsRepository
func NewNewsRepository(db *DB) repositories.NewsRepository {
	return &newsRepository{db: db}
}

func newestNewsFirst(a, b *models.News) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func copyNews(n *models.News) *models.News {
	cp := *n
	cp.Subtitles = append([]models.NewsSubtitle{}, n.Subtitles...)
	return &cp
}

func (r *newsRepository) list(keep func(*models.News) bool) []*models.News {
	out := collect(r.db.data.news, keep, newestNewsFirst)
	for i, n := range out {
		out[i] = copyNews(n)
	}
	return out
}

func (r *newsRepository) FindAll(ctx context.Context) ([]*models.News, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.list(nil), nil
}

func (r *newsRepository) FindByID(ctx context.Context, id string) (*models.News, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if n, ok := r.db.data.news[id]; ok {
		return copyNews(&n), nil
	}
	return nil, notFound("news")
}

func (r *newsRepository) Search(ctx context.Context, term string) ([]*models.News, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.list(func(n *models.News) bool {
		return contains(n.Title, term) || contains(n.Content, term) || contains(n.Author, term)
	}), nil
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	if err := news.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	if news.ID == "" {
		news.ID = repositories.NewID()
	}
	repositories.Timestamp(&news.CreatedAt, &news.UpdatedAt)
	put(ctx, r.db.data.news, news.ID, *copyNews(news))
	return nil
}

func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	if err := news.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.news[news.ID]
	if !ok {
		return notFound("news")
	}
	news.CreatedAt = stored.CreatedAt
	repositories.Timestamp(&news.CreatedAt, &news.UpdatedAt)
	put(ctx, r.db.data.news, news.ID, *copyNews(news))
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.news[id]; !ok {
		return notFound("news")
	}
	remove(ctx, r.db.data.news, id)
	return nil
}
