package hero

import (
	"context"

	"clinic-content-api/internal/domain"
)

// Repository persists and fetches hero sections. Listings are ordered by
// Order ascending, newest first within the same order.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.HeroSection, error)
	GetByID(ctx context.Context, id string) (*domain.HeroSection, error)
	Create(ctx context.Context, h domain.HeroSection) (*domain.HeroSection, error)
	Update(ctx context.Context, h domain.HeroSection) (*domain.HeroSection, error)
	Delete(ctx context.Context, id string) error
}
