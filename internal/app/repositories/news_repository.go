package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

var newsColumns = []string{"id", "title", "content", "subtitles", "author", "created_at", "updated_at"}

// PgNewsRepository handles news database operations. Subtitles are stored as JSONB.
type PgNewsRepository struct {
	base
}

// NewNewsRepository creates a new PgNewsRepository
func NewNewsRepository(pool *pgxpool.Pool) *PgNewsRepository {
	return &PgNewsRepository{base: newBase(pool)}
}

func scanNews(row pgx.Row) (*models.News, error) {
	n := &models.News{}
	var subtitles []byte
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &subtitles, &n.Author, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.Subtitles = []models.NewsSubtitle{}
	if len(subtitles) > 0 {
		if err := json.Unmarshal(subtitles, &n.Subtitles); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func encodeSubtitles(subtitles []models.NewsSubtitle) ([]byte, error) {
	if subtitles == nil {
		subtitles = []models.NewsSubtitle{}
	}
	return json.Marshal(subtitles)
}

func (r *PgNewsRepository) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*models.News, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	defer rows.Close()

	items := []*models.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, opError(op, err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(op, err)
	}
	return items, nil
}

// FindAll retrieves all news, newest first
func (r *PgNewsRepository) FindAll(ctx context.Context) ([]*models.News, error) {
	return r.list(ctx, "find all news", r.sb.Select(newsColumns...).From("news").OrderBy("created_at DESC"))
}

// FindByID retrieves a news article by document ID
func (r *PgNewsRepository) FindByID(ctx context.Context, id string) (*models.News, error) {
	sql, args, err := r.sb.Select(newsColumns...).From("news").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, opError("find news", err)
	}

	n, err := scanNews(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("news")
		}
		return nil, opError("find news", err)
	}
	return n, nil
}

// Search matches term against title, content and author
func (r *PgNewsRepository) Search(ctx context.Context, term string) ([]*models.News, error) {
	pattern := likePattern(term)
	q := r.sb.Select(newsColumns...).From("news").
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"author": pattern},
		}).
		OrderBy("created_at DESC")
	return r.list(ctx, "search news", q)
}

// Create inserts a news article and assigns its ID
func (r *PgNewsRepository) Create(ctx context.Context, news *models.News) error {
	if err := news.Validate(); err != nil {
		return err
	}
	if news.ID == "" {
		news.ID = NewID()
	}
	Timestamp(&news.CreatedAt, &news.UpdatedAt)

	subtitles, err := encodeSubtitles(news.Subtitles)
	if err != nil {
		return opError("create news", err)
	}

	sql, args, err := r.sb.Insert("news").Columns(newsColumns...).
		Values(news.ID, news.Title, news.Content, subtitles, news.Author, news.CreatedAt, news.UpdatedAt).
		ToSql()
	if err != nil {
		return opError("create news", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return opError("create news", err)
	}
	return nil
}

// Update replaces the stored news article
func (r *PgNewsRepository) Update(ctx context.Context, news *models.News) error {
	if err := news.Validate(); err != nil {
		return err
	}
	Timestamp(&news.CreatedAt, &news.UpdatedAt)

	subtitles, err := encodeSubtitles(news.Subtitles)
	if err != nil {
		return opError("update news", err)
	}

	sql, args, err := r.sb.Update("news").
		Set("title", news.Title).
		Set("content", news.Content).
		Set("subtitles", subtitles).
		Set("author", news.Author).
		Set("updated_at", news.UpdatedAt).
		Where(squirrel.Eq{"id": news.ID}).
		ToSql()
	if err != nil {
		return opError("update news", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("update news", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("news")
	}
	return nil
}

// Delete removes a news article
func (r *PgNewsRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("news").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete news", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete news", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("news")
	}
	return nil
}
