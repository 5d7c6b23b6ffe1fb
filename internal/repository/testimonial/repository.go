package testimonial

import (
	"context"

	"clinic-content-api/internal/domain"
)

// Repository persists and fetches testimonials, ordered like hero sections.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error)
	GetByID(ctx context.Context, id string) (*domain.Testimonial, error)
	Create(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error)
	Update(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error)
	Delete(ctx context.Context, id string) error
}
