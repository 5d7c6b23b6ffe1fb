// Package hero manages the landing page hero sections.
package hero

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
	herorepo "clinic-content-api/internal/repository/hero"
)

const (
	Folder      = "hero-sections"
	cachePrefix = "hero:"
)

// CreateInput carries a new hero section. IsActive defaults to true.
type CreateInput struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
	File        *media.File
	ImageAlt    string
	CTAText     string
	CTALink     string
	IsActive    *bool
	Order       int
}

type UpdateInput struct {
	Title       domain.Field[string]
	Subtitle    domain.Field[string]
	Description domain.Field[string]
	ImageAlt    domain.Field[string]
	CTAText     domain.Field[string]
	CTALink     domain.Field[string]
	IsActive    domain.Field[bool]
	Order       domain.Field[int]
	Image       string
	File        *media.File
}

type Service struct {
	repo     herorepo.Repository
	uploader media.Uploader
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func New(repo herorepo.Repository, uploader media.Uploader, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
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

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.HeroSection, error) {
	key := "list:" + strconv.FormatBool(activeOnly)
	return cache.Remember(ctx, s.cache, cachePrefix, key, s.cacheTTL, func(ctx context.Context) ([]domain.HeroSection, error) {
		return s.repo.List(ctx, activeOnly)
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.HeroSection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.HeroSection, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.File == nil && strings.TrimSpace(in.Image) == "" {
		missing = append(missing, "image")
	}
	if err := domain.MissingFields(missing...); err != nil {
		return nil, err
	}

	image, err := media.Resolve(ctx, s.uploader, in.File, in.Image, Folder)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	created, err := s.repo.Create(ctx, domain.HeroSection{
		Title:       strings.TrimSpace(in.Title),
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Image:       image,
		ImageAlt:    in.ImageAlt,
		CTAText:     in.CTAText,
		CTALink:     in.CTALink,
		IsActive:    active,
		Order:       in.Order,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("hero section created", zap.String("id", created.ID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.HeroSection, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title, ok := in.Title.Get(); ok {
		h.Title = strings.TrimSpace(title)
	}
	h.Subtitle = in.Subtitle.Apply(h.Subtitle)
	h.Description = in.Description.Apply(h.Description)
	h.ImageAlt = in.ImageAlt.Apply(h.ImageAlt)
	h.CTAText = in.CTAText.Apply(h.CTAText)
	h.CTALink = in.CTALink.Apply(h.CTALink)
	h.IsActive = in.IsActive.Apply(h.IsActive)
	h.Order = in.Order.Apply(h.Order)

	if in.File != nil || strings.TrimSpace(in.Image) != "" {
		image, err := media.Resolve(ctx, s.uploader, in.File, in.Image, Folder)
		if err != nil {
			return nil, err
		}
		h.Image = image
	}

	updated, err := s.repo.Update(ctx, *h)
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
	s.logger.Info("hero section deleted", zap.String("id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cachePrefix); err != nil {
		s.logger.Warn("hero cache invalidation failed", zap.Error(err))
	}
}
