package testimonial

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/logging"
	"clinic-content-api/internal/repository/pgutil"
)

const testimonialColumns = `id::text, name, designation, content, image, rating, is_active, sort_order, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error) {
	q := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("testimonial repo: list", zap.Bool("active_only", activeOnly), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	t, err := scanTestimonial(r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
	return t, pgutil.MapError(err)
}

func (r *postgresRepo) Create(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	const q = `
INSERT INTO testimonials (name, designation, content, image, rating, is_active, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + testimonialColumns
	out, err := scanTestimonial(r.pool.QueryRow(ctx, q,
		t.Name, t.Designation, t.Content, t.Image, t.Rating, t.IsActive, t.Order))
	if err != nil {
		r.logger.Error("testimonial repo: create", zap.String("name", t.Name), zap.Error(err))
		return nil, pgutil.MapError(err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	const q = `
UPDATE testimonials
SET name = $2, designation = $3, content = $4, image = $5, rating = $6, is_active = $7,
    sort_order = $8, updated_at = now()
WHERE id = $1
RETURNING ` + testimonialColumns
	out, err := scanTestimonial(r.pool.QueryRow(ctx, q,
		t.ID, t.Name, t.Designation, t.Content, t.Image, t.Rating, t.IsActive, t.Order))
	if err != nil {
		mapped := pgutil.MapError(err)
		if mapped != domain.ErrNotFound {
			r.logger.Error("testimonial repo: update", zap.String("id", t.ID), zap.Error(err))
		}
		return nil, mapped
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return pgutil.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTestimonial(row pgx.Row) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := row.Scan(&t.ID, &t.Name, &t.Designation, &t.Content, &t.Image, &t.Rating, &t.IsActive,
		&t.Order, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
