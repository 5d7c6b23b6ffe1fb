package blog

import (
	"context"

	"clinic-content-api/internal/domain"
)

// ListFilter narrows a blog listing. Zero value lists everything.
type ListFilter struct {
	Status string
}

// Repository persists and fetches blogs. Reads populate Author from the
// referenced admin; a missing admin leaves Author nil.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Blog, error)
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	// Create returns domain.ErrAlreadyExists when the slug is taken.
	Create(ctx context.Context, b domain.Blog) (*domain.Blog, error)
	// Update overwrites every mutable column of the blog with b.ID and
	// returns domain.ErrAlreadyExists when the new slug is taken.
	Update(ctx context.Context, b domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
