package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/logging"
	"clinic-content-api/internal/repository/pgutil"
)

const selectBlog = `
SELECT b.id::text, b.title, b.slug, b.excerpt, b.content, b.featured_image, b.meta_title, b.meta_description,
       b.meta_keywords, COALESCE(b.author_id::text, ''), a.id::text, a.name, a.email,
       b.status, b.published_at, b.created_at, b.updated_at
FROM blogs b
LEFT JOIN admins a ON a.id = b.author_id
`

// slugIndex is the unique index behind ErrAlreadyExists on writes.
const slugIndex = "blogs_slug_idx"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Blog, error) {
	q := selectBlog
	args := []any{}
	if filter.Status != "" {
		q += ` WHERE b.status = $1`
		args = append(args, filter.Status)
	}
	q += ` ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("blog repo: list", zap.String("status", filter.Status), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("blog repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("blog repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, selectBlog+` WHERE b.id = $1`, id))
	return b, pgutil.MapError(err)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, selectBlog+` WHERE b.slug = $1`, slug))
	return b, pgutil.MapError(err)
}

func (r *postgresRepo) Create(ctx context.Context, b domain.Blog) (*domain.Blog, error) {
	const q = `
INSERT INTO blogs (title, slug, excerpt, content, featured_image, meta_title, meta_description,
                   meta_keywords, author_id, status, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, $10, $11)
RETURNING id::text
`
	var id string
	err := r.pool.QueryRow(ctx, q,
		b.Title, b.Slug, b.Excerpt, b.Content, b.FeaturedImage, b.MetaTitle, b.MetaDescription,
		keywordsOrEmpty(b.MetaKeywords), b.AuthorID, b.Status, b.PublishedAt,
	).Scan(&id)
	if err != nil {
		mapped := mapWriteError(err)
		if mapped != domain.ErrAlreadyExists {
			r.logger.Error("blog repo: create", zap.String("slug", b.Slug), zap.Error(err))
		}
		return nil, mapped
	}
	r.logger.Info("blog repo: created", zap.String("id", id), zap.String("slug", b.Slug))
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Update(ctx context.Context, b domain.Blog) (*domain.Blog, error) {
	const q = `
UPDATE blogs
SET title = $2, slug = $3, excerpt = $4, content = $5, featured_image = $6, meta_title = $7,
    meta_description = $8, meta_keywords = $9, status = $10, published_at = $11, updated_at = now()
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.FeaturedImage, b.MetaTitle,
		b.MetaDescription, keywordsOrEmpty(b.MetaKeywords), b.Status, b.PublishedAt,
	)
	if err != nil {
		mapped := mapWriteError(err)
		if mapped != domain.ErrAlreadyExists {
			r.logger.Error("blog repo: update", zap.String("id", b.ID), zap.Error(err))
		}
		return nil, mapped
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return pgutil.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("blog repo: deleted", zap.String("id", id))
	return nil
}

// mapWriteError reports a unique violation as a slug collision only when the
// slug index raised it; any other unique violation stays an internal error.
func mapWriteError(err error) error {
	mapped := pgutil.MapError(err)
	if mapped != domain.ErrAlreadyExists {
		return mapped
	}
	if name := pgutil.ConstraintName(err); name != slugIndex {
		return fmt.Errorf("blog repo: unique violation on %q: %w", name, err)
	}
	return mapped
}

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var b domain.Blog
	var authorID, authorName, authorMail *string
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.FeaturedImage, &b.MetaTitle, &b.MetaDescription,
		&b.MetaKeywords, &b.AuthorID, &authorID, &authorName, &authorMail,
		&b.Status, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if authorID != nil {
		b.Author = &domain.AuthorRef{ID: *authorID, Name: deref(authorName), Email: deref(authorMail)}
	}
	if b.MetaKeywords == nil {
		b.MetaKeywords = []string{}
	}
	return &b, nil
}

func keywordsOrEmpty(k []string) []string {
	if k == nil {
		return []string{}
	}
	return k
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
