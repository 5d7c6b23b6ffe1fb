// Package memstore is an in-memory implementation of the repository
// interfaces for tests. It enforces the same uniqueness rules as the
// Postgres schema (case-insensitive admin email, unique blog slug).
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinic-content-api/internal/domain"
	blogrepo "clinic-content-api/internal/repository/blog"
)

// Store holds every collection behind one lock.
type Store struct {
	mu           sync.Mutex
	clock        time.Time
	admins       map[string]domain.Admin
	blogs        map[string]domain.Blog
	heroes       map[string]domain.HeroSection
	testimonials map[string]domain.Testimonial

	Admins       *Admins
	Blogs        *Blogs
	Heroes       *Heroes
	Testimonials *Testimonials
}

func New() *Store {
	s := &Store{
		clock:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		admins:       make(map[string]domain.Admin),
		blogs:        make(map[string]domain.Blog),
		heroes:       make(map[string]domain.HeroSection),
		testimonials: make(map[string]domain.Testimonial),
	}
	s.Admins = &Admins{s: s}
	s.Blogs = &Blogs{s: s}
	s.Heroes = &Heroes{s: s}
	s.Testimonials = &Testimonials{s: s}
	return s
}

// tick returns a strictly increasing timestamp so ordering by creation time
// is deterministic. Callers hold s.mu.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// Admins implements the admin repository.
type Admins struct{ s *Store }

func (r *Admins) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.s.admins {
		if strings.ToLower(a.Email) == email {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Admins) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *Admins) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.LastLogin = &at
	r.s.admins[id] = a
	return nil
}

func (r *Admins) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = r.s.tick()
	r.s.admins[id] = a
	return nil
}

func (r *Admins) Upsert(_ context.Context, a domain.Admin) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(a.Email))
	now := r.s.tick()
	for id, existing := range r.s.admins {
		if strings.ToLower(existing.Email) == email {
			existing.PasswordHash = a.PasswordHash
			existing.Name = a.Name
			existing.Role = a.Role
			existing.UpdatedAt = now
			r.s.admins[id] = existing
			return &existing, nil
		}
	}
	a.ID = uuid.NewString()
	a.Email = email
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.admins[a.ID] = a
	return &a, nil
}

// Remove deletes an admin; the API never does this, tests use it to
// simulate an admin disappearing after a token was issued.
func (r *Admins) Remove(id string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.admins, id)
}

// Blogs implements the blog repository.
type Blogs struct{ s *Store }

func (r *Blogs) List(_ context.Context, filter blogrepo.ListFilter) ([]domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Blog{}
	for _, b := range r.s.blogs {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, r.populate(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Blogs) GetByID(_ context.Context, id string) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.blogs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.populate(b)
	return &out, nil
}

func (r *Blogs) GetBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.blogs {
		if b.Slug == slug {
			out := r.populate(b)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Blogs) Create(_ context.Context, b domain.Blog) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(b.Slug, "") {
		return nil, domain.ErrAlreadyExists
	}
	now := r.s.tick()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Author = nil
	b.MetaKeywords = cloneKeywords(b.MetaKeywords)
	r.s.blogs[b.ID] = b
	out := r.populate(b)
	return &out, nil
}

func (r *Blogs) Update(_ context.Context, b domain.Blog) (*domain.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.blogs[b.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if r.slugTaken(b.Slug, b.ID) {
		return nil, domain.ErrAlreadyExists
	}
	b.AuthorID = existing.AuthorID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = r.s.tick()
	b.Author = nil
	b.MetaKeywords = cloneKeywords(b.MetaKeywords)
	r.s.blogs[b.ID] = b
	out := r.populate(b)
	return &out, nil
}

func (r *Blogs) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blogs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.blogs, id)
	return nil
}

// Len reports how many blogs are stored.
func (r *Blogs) Len() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.blogs)
}

func (r *Blogs) slugTaken(slug, exceptID string) bool {
	for id, b := range r.s.blogs {
		if b.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (r *Blogs) populate(b domain.Blog) domain.Blog {
	b.MetaKeywords = cloneKeywords(b.MetaKeywords)
	if a, ok := r.s.admins[b.AuthorID]; ok {
		b.Author = &domain.AuthorRef{ID: a.ID, Name: a.Name, Email: a.Email}
	}
	return b
}

func cloneKeywords(k []string) []string {
	out := make([]string, len(k))
	copy(out, k)
	return out
}

// Heroes implements the hero section repository.
type Heroes struct{ s *Store }

func (r *Heroes) List(_ context.Context, activeOnly bool) ([]domain.HeroSection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.HeroSection{}
	for _, h := range r.s.heroes {
		if activeOnly && !h.IsActive {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Heroes) GetByID(_ context.Context, id string) (*domain.HeroSection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.heroes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (r *Heroes) Create(_ context.Context, h domain.HeroSection) (*domain.HeroSection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.tick()
	h.ID = uuid.NewString()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.s.heroes[h.ID] = h
	return &h, nil
}

func (r *Heroes) Update(_ context.Context, h domain.HeroSection) (*domain.HeroSection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.heroes[h.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = r.s.tick()
	r.s.heroes[h.ID] = h
	return &h, nil
}

func (r *Heroes) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.heroes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.heroes, id)
	return nil
}

// Testimonials implements the testimonial repository.
type Testimonials struct{ s *Store }

func (r *Testimonials) List(_ context.Context, activeOnly bool) ([]domain.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Testimonial{}
	for _, t := range r.s.testimonials {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Testimonials) GetByID(_ context.Context, id string) (*domain.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.testimonials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *Testimonials) Create(_ context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.tick()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.s.testimonials[t.ID] = t
	return &t, nil
}

func (r *Testimonials) Update(_ context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.testimonials[t.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = r.s.tick()
	r.s.testimonials[t.ID] = t
	return &t, nil
}

func (r *Testimonials) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.testimonials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.testimonials, id)
	return nil
}
