// Package testimonial manages patient testimonials.
package testimonial

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
	testimonialrepo "clinic-content-api/internal/repository/testimonial"
)

const (
	Folder      = "testimonials"
	cachePrefix = "testimonials:"
)

var errRating error = &domain.ValidationError{
	Message: fmt.Sprintf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating),
	Fields:  []string{"rating"},
}

// CreateInput carries a new testimonial. Image is optional; Rating defaults
// to domain.DefaultRating and IsActive to true.
type CreateInput struct {
	Name        string
	Designation string
	Content     string
	Image       string
	File        *media.File
	Rating      *int
	IsActive    *bool
	Order       int
}

type UpdateInput struct {
	Name        domain.Field[string]
	Designation domain.Field[string]
	Content     domain.Field[string]
	Rating      domain.Field[int]
	IsActive    domain.Field[bool]
	Order       domain.Field[int]
	Image       string
	File        *media.File
}

type Service struct {
	repo     testimonialrepo.Repository
	uploader media.Uploader
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func New(repo testimonialrepo.Repository, uploader media.Uploader, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if uploader == nil {
		uploader = media.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, uploader: uploader, cache: c, cacheTTL: cacheTTL, logger: logger}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error) {
	key := "list:" + strconv.FormatBool(activeOnly)
	return cache.Remember(ctx, s.cache, cachePrefix, key, s.cacheTTL, func(ctx context.Context) ([]domain.Testimonial, error) {
		return s.repo.List(ctx, activeOnly)
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Testimonial, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if err := domain.MissingFields(missing...); err != nil {
		return nil, err
	}
	rating := domain.DefaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if !domain.ValidRating(rating) {
		return nil, errRating
	}

	image, err := media.Resolve(ctx, s.uploader, in.File, in.Image, Folder)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	created, err := s.repo.Create(ctx, domain.Testimonial{
		Name:        strings.TrimSpace(in.Name),
		Designation: in.Designation,
		Content:     in.Content,
		Image:       image,
		Rating:      rating,
		IsActive:    active,
		Order:       in.Order,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("testimonial created", zap.String("id", created.ID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name, ok := in.Name.Get(); ok {
		t.Name = strings.TrimSpace(name)
	}
	t.Designation = in.Designation.Apply(t.Designation)
	t.Content = in.Content.Apply(t.Content)
	if rating, ok := in.Rating.Get(); ok {
		if !domain.ValidRating(rating) {
			return nil, errRating
		}
		t.Rating = rating
	}
	t.IsActive = in.IsActive.Apply(t.IsActive)
	t.Order = in.Order.Apply(t.Order)

	if in.File != nil || strings.TrimSpace(in.Image) != "" {
		image, err := media.Resolve(ctx, s.uploader, in.File, in.Image, Folder)
		if err != nil {
			return nil, err
		}
		t.Image = image
	}

	updated, err := s.repo.Update(ctx, *t)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("testimonial deleted", zap.String("id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cachePrefix); err != nil {
		s.logger.Warn("testimonial cache invalidation failed", zap.Error(err))
	}
}
