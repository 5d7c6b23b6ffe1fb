// Package blog implements blog publishing: slug assignment, content
// sanitizing, image resolution and the publish-once timestamp.
package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
	blogrepo "clinic-content-api/internal/repository/blog"
)

const (
	// Folder is the media host folder for featured images.
	Folder      = "blogs"
	cachePrefix = "blogs:"
)

var (
	// ErrSlugTaken is returned when a new blog's slug collides with an
	// existing one.
	ErrSlugTaken error = &domain.ValidationError{Message: "A blog with this title already exists"}
	// ErrInvalidStatus rejects statuses other than draft and published.
	ErrInvalidStatus error = &domain.ValidationError{Message: "Status must be draft or published"}
	errEmptySlug     error = &domain.ValidationError{Message: "Title must contain at least one letter or digit"}
)

// CreateInput carries the fields of a new blog. FeaturedImage is a URL used
// only when Image is nil.
type CreateInput struct {
	Title           string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Image           *media.File
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	Status          string
	AuthorID        string
}

// UpdateInput holds one instruction per mutable field.
type UpdateInput struct {
	Title           domain.Field[string]
	Excerpt         domain.Field[string]
	Content         domain.Field[string]
	MetaTitle       domain.Field[string]
	MetaDescription domain.Field[string]
	MetaKeywords    domain.Field[[]string]
	Status          domain.Field[string]
	FeaturedImage   string
	Image           *media.File
}

// Service manages blogs.
type Service struct {
	repo     blogrepo.Repository
	uploader media.Uploader
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Service. A nil cache disables caching.
func New(repo blogrepo.Repository, uploader media.Uploader, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if uploader == nil {
		uploader = media.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, uploader: uploader, cache: c, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// List returns blogs newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]domain.Blog, error) {
	status = strings.TrimSpace(status)
	if status != "" && !domain.ValidBlogStatus(status) {
		return nil, ErrInvalidStatus
	}
	key := "list:" + status
	return cache.Remember(ctx, s.cache, cachePrefix, key, s.cacheTTL, func(ctx context.Context) ([]domain.Blog, error) {
		return s.repo.List(ctx, blogrepo.ListFilter{Status: status})
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// Create validates and stores a new blog. The slug collision check runs
// before any upload; the unique index catches a concurrent writer that wins
// between the check and the insert.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Blog, error) {
	title := strings.TrimSpace(in.Title)
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if in.Image == nil && strings.TrimSpace(in.FeaturedImage) == "" {
		missing = append(missing, "featuredImage")
	}
	if err := domain.MissingFields(missing...); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.BlogStatusDraft
	}
	if !domain.ValidBlogStatus(status) {
		return nil, ErrInvalidStatus
	}

	slug := Slugify(title)
	if slug == "" {
		return nil, errEmptySlug
	}
	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	image, err := media.Resolve(ctx, s.uploader, in.Image, in.FeaturedImage, Folder)
	if err != nil {
		return nil, err
	}

	b := domain.Blog{
		Title:           title,
		Slug:            slug,
		Excerpt:         strings.TrimSpace(in.Excerpt),
		Content:         sanitizeContent(in.Content),
		FeaturedImage:   image,
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: strings.TrimSpace(in.MetaDescription),
		MetaKeywords:    in.MetaKeywords,
		Status:          status,
		AuthorID:        in.AuthorID,
	}
	if b.MetaTitle == "" {
		b.MetaTitle = b.Title
	}
	if b.MetaDescription == "" {
		source := b.Excerpt
		if source == "" {
			source = b.Content
		}
		b.MetaDescription = plainText(source, metaDescriptionLimit)
	}
	b.MarkPublished(s.now())

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("blog created", zap.String("id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

// Update applies in to the blog with id. A title whose slug belongs to a
// different blog keeps the current slug.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := b.Slug

	if title, ok := in.Title.Get(); ok {
		b.Title = strings.TrimSpace(title)
		if slug := Slugify(b.Title); slug != "" && slug != b.Slug && s.slugFree(ctx, slug, b.ID) {
			b.Slug = slug
		}
	}
	b.Excerpt = in.Excerpt.Apply(b.Excerpt)
	if content, ok := in.Content.Get(); ok {
		b.Content = sanitizeContent(content)
	}
	b.MetaTitle = in.MetaTitle.Apply(b.MetaTitle)
	b.MetaDescription = in.MetaDescription.Apply(b.MetaDescription)
	b.MetaKeywords = in.MetaKeywords.Apply(b.MetaKeywords)
	if status, ok := in.Status.Get(); ok {
		status = strings.TrimSpace(status)
		if !domain.ValidBlogStatus(status) {
			return nil, ErrInvalidStatus
		}
		b.Status = status
	}
	b.MarkPublished(s.now())

	if in.Image != nil || strings.TrimSpace(in.FeaturedImage) != "" {
		image, err := media.Resolve(ctx, s.uploader, in.Image, in.FeaturedImage, Folder)
		if err != nil {
			return nil, err
		}
		b.FeaturedImage = image
	}

	updated, err := s.repo.Update(ctx, *b)
	if errors.Is(err, domain.ErrAlreadyExists) && b.Slug != oldSlug {
		s.logger.Info("blog slug taken concurrently, keeping previous", zap.String("id", b.ID), zap.String("slug", b.Slug))
		b.Slug = oldSlug
		updated, err = s.repo.Update(ctx, *b)
	}
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
	s.logger.Info("blog deleted", zap.String("id", id))
	return nil
}

func (s *Service) slugFree(ctx context.Context, slug, selfID string) bool {
	other, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return errors.Is(err, domain.ErrNotFound)
	}
	return other.ID == selfID
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cachePrefix); err != nil {
		s.logger.Warn("blog cache invalidation failed", zap.Error(err))
	}
}
