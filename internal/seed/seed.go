// Package seed creates admins out of band and loads starter content from
// YAML fixtures. Content goes through the same services as the API so the
// stored documents obey the same rules.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"clinic-content-api/internal/domain"
	adminrepo "clinic-content-api/internal/repository/admin"
	authsvc "clinic-content-api/internal/service/auth"
	blogsvc "clinic-content-api/internal/service/blog"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
)

const minPasswordLen = 8

// AdminInput describes the admin to create or reset.
type AdminInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Admin inserts the admin, or resets password, name and role when the
// email already exists.
func Admin(ctx context.Context, repo adminrepo.Repository, in AdminInput) (*domain.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q", in.Email)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "admin"
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Admin"
	}
	hash, err := authsvc.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return repo.Upsert(ctx, domain.Admin{Email: email, PasswordHash: hash, Name: name, Role: role})
}

// Fixtures is the YAML document accepted by Content.
type Fixtures struct {
	HeroSections []HeroFixture        `yaml:"heroSections"`
	Testimonials []TestimonialFixture `yaml:"testimonials"`
	Blogs        []BlogFixture        `yaml:"blogs"`
}

type HeroFixture struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	ImageAlt    string `yaml:"imageAlt"`
	CTAText     string `yaml:"ctaText"`
	CTALink     string `yaml:"ctaLink"`
	IsActive    *bool  `yaml:"isActive"`
	Order       int    `yaml:"order"`
}

type TestimonialFixture struct {
	Name        string `yaml:"name"`
	Designation string `yaml:"designation"`
	Content     string `yaml:"content"`
	Image       string `yaml:"image"`
	Rating      *int   `yaml:"rating"`
	IsActive    *bool  `yaml:"isActive"`
	Order       int    `yaml:"order"`
}

type BlogFixture struct {
	Title           string   `yaml:"title"`
	Excerpt         string   `yaml:"excerpt"`
	Content         string   `yaml:"content"`
	FeaturedImage   string   `yaml:"featuredImage"`
	MetaTitle       string   `yaml:"metaTitle"`
	MetaDescription string   `yaml:"metaDescription"`
	MetaKeywords    []string `yaml:"metaKeywords"`
	Status          string   `yaml:"status"`
}

// LoadFixtures decodes fixtures, rejecting unknown keys.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

type HeroService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.HeroSection, error)
	Create(ctx context.Context, in herosvc.CreateInput) (*domain.HeroSection, error)
}

type TestimonialService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error)
	Create(ctx context.Context, in testimonialsvc.CreateInput) (*domain.Testimonial, error)
}

type BlogService interface {
	Create(ctx context.Context, in blogsvc.CreateInput) (*domain.Blog, error)
}

// Services are the content services fixtures are written through.
type Services struct {
	Heroes       HeroService
	Testimonials TestimonialService
	Blogs        BlogService
}

// Result counts what Content created and skipped.
type Result struct {
	Created int
	Skipped int
}

// Content writes fixtures authored by authorID. Entries that already exist
// (same hero title, testimonial name or blog slug) are skipped, so running
// it twice is harmless.
func Content(ctx context.Context, svc Services, f *Fixtures, authorID string, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result

	heroes, err := svc.Heroes.List(ctx, false)
	if err != nil {
		return res, fmt.Errorf("list hero sections: %w", err)
	}
	heroTitles := make(map[string]bool, len(heroes))
	for _, h := range heroes {
		heroTitles[h.Title] = true
	}
	for _, h := range f.HeroSections {
		if heroTitles[strings.TrimSpace(h.Title)] {
			res.Skipped++
			continue
		}
		_, err := svc.Heroes.Create(ctx, herosvc.CreateInput{
			Title: h.Title, Subtitle: h.Subtitle, Description: h.Description, Image: h.Image,
			ImageAlt: h.ImageAlt, CTAText: h.CTAText, CTALink: h.CTALink, IsActive: h.IsActive, Order: h.Order,
		})
		if err != nil {
			return res, fmt.Errorf("hero section %q: %w", h.Title, err)
		}
		res.Created++
	}

	testimonials, err := svc.Testimonials.List(ctx, false)
	if err != nil {
		return res, fmt.Errorf("list testimonials: %w", err)
	}
	names := make(map[string]bool, len(testimonials))
	for _, t := range testimonials {
		names[t.Name] = true
	}
	for _, t := range f.Testimonials {
		if names[strings.TrimSpace(t.Name)] {
			res.Skipped++
			continue
		}
		_, err := svc.Testimonials.Create(ctx, testimonialsvc.CreateInput{
			Name: t.Name, Designation: t.Designation, Content: t.Content, Image: t.Image,
			Rating: t.Rating, IsActive: t.IsActive, Order: t.Order,
		})
		if err != nil {
			return res, fmt.Errorf("testimonial %q: %w", t.Name, err)
		}
		res.Created++
	}

	for _, b := range f.Blogs {
		_, err := svc.Blogs.Create(ctx, blogsvc.CreateInput{
			Title: b.Title, Excerpt: b.Excerpt, Content: b.Content, FeaturedImage: b.FeaturedImage,
			MetaTitle: b.MetaTitle, MetaDescription: b.MetaDescription, MetaKeywords: b.MetaKeywords,
			Status: b.Status, AuthorID: authorID,
		})
		if errors.Is(err, blogsvc.ErrSlugTaken) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("blog %q: %w", b.Title, err)
		}
		res.Created++
	}

	logger.Info("content seeded", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}
