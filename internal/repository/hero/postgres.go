package hero

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/logging"
	"clinic-content-api/internal/repository/pgutil"
)

const heroColumns = `id::text, title, subtitle, description, image, image_alt, cta_text, cta_link,
       is_active, sort_order, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.HeroSection, error) {
	q := `SELECT ` + heroColumns + ` FROM hero_sections`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("hero repo: list", zap.Bool("active_only", activeOnly), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.HeroSection{}
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *h)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.HeroSection, error) {
	h, err := scanHero(r.pool.QueryRow(ctx, `SELECT `+heroColumns+` FROM hero_sections WHERE id = $1`, id))
	return h, pgutil.MapError(err)
}

func (r *postgresRepo) Create(ctx context.Context, h domain.HeroSection) (*domain.HeroSection, error) {
	const q = `
INSERT INTO hero_sections (title, subtitle, description, image, image_alt, cta_text, cta_link, is_active, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + heroColumns
	out, err := scanHero(r.pool.QueryRow(ctx, q,
		h.Title, h.Subtitle, h.Description, h.Image, h.ImageAlt, h.CTAText, h.CTALink, h.IsActive, h.Order))
	if err != nil {
		r.logger.Error("hero repo: create", zap.String("title", h.Title), zap.Error(err))
		return nil, pgutil.MapError(err)
	}
	r.logger.Info("hero repo: created", zap.String("id", out.ID))
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, h domain.HeroSection) (*domain.HeroSection, error) {
	const q = `
UPDATE hero_sections
SET title = $2, subtitle = $3, description = $4, image = $5, image_alt = $6, cta_text = $7,
    cta_link = $8, is_active = $9, sort_order = $10, updated_at = now()
WHERE id = $1
RETURNING ` + heroColumns
	out, err := scanHero(r.pool.QueryRow(ctx, q,
		h.ID, h.Title, h.Subtitle, h.Description, h.Image, h.ImageAlt, h.CTAText, h.CTALink, h.IsActive, h.Order))
	if err != nil {
		mapped := pgutil.MapError(err)
		if mapped != domain.ErrNotFound {
			r.logger.Error("hero repo: update", zap.String("id", h.ID), zap.Error(err))
		}
		return nil, mapped
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM hero_sections WHERE id = $1`, id)
	if err != nil {
		return pgutil.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanHero(row pgx.Row) (*domain.HeroSection, error) {
	var h domain.HeroSection
	if err := row.Scan(&h.ID, &h.Title, &h.Subtitle, &h.Description, &h.Image, &h.ImageAlt, &h.CTAText,
		&h.CTALink, &h.IsActive, &h.Order, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
