package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	authsvc "clinic-content-api/internal/service/auth"
	blogsvc "clinic-content-api/internal/service/blog"
	"clinic-content-api/internal/service/chat"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
)

// Upload ceilings per resource. Bodies may exceed the file ceiling by
// formOverhead to leave room for the other form fields.
const (
	maxBlogImage        = 10 << 20
	maxHeroImage        = 10 << 20
	maxTestimonialImage = 5 << 20
	formOverhead        = 1 << 20
	maxChatBody         = 64 << 10
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error)
	Verify(ctx context.Context, token string) (*domain.Admin, error)
	ChangePassword(ctx context.Context, adminID, current, next string) error
}

type BlogService interface {
	List(ctx context.Context, status string) ([]domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	Create(ctx context.Context, in blogsvc.CreateInput) (*domain.Blog, error)
	Update(ctx context.Context, id string, in blogsvc.UpdateInput) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

type HeroService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.HeroSection, error)
	Get(ctx context.Context, id string) (*domain.HeroSection, error)
	Create(ctx context.Context, in herosvc.CreateInput) (*domain.HeroSection, error)
	Update(ctx context.Context, id string, in herosvc.UpdateInput) (*domain.HeroSection, error)
	Delete(ctx context.Context, id string) error
}

type TestimonialService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error)
	Get(ctx context.Context, id string) (*domain.Testimonial, error)
	Create(ctx context.Context, in testimonialsvc.CreateInput) (*domain.Testimonial, error)
	Update(ctx context.Context, id string, in testimonialsvc.UpdateInput) (*domain.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type ChatService interface {
	Reply(ctx context.Context, message string, history []chat.Message) (*chat.Reply, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the services the router exposes.
type Deps struct {
	Auth         AuthService
	Blogs        BlogService
	Heroes       HeroService
	Testimonials TestimonialService
	Chat         ChatService
	DB           Pinger
}

// Options tunes transport behaviour.
type Options struct {
	AllowedOrigins     []string
	LoginRatePerMinute int
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := &handlers{deps: deps, logger: logger}
	admin := requireAdmin(deps.Auth, logger)

	router.GET("/health", h.health)
	router.GET("/readyz", h.ready)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", throttleLogin(opts.LoginRatePerMinute, logger), h.login)
	auth.GET("/verify", admin, h.verify)
	auth.PUT("/password", admin, h.changePassword)

	blogs := api.Group("/blogs")
	blogs.GET("", h.listBlogs)
	blogs.GET("/slug/:slug", h.getBlogBySlug)
	blogs.GET("/:id", h.getBlog)
	blogs.POST("", admin, limitBody(maxBlogImage+formOverhead), h.createBlog)
	blogs.PUT("/:id", admin, limitBody(maxBlogImage+formOverhead), h.updateBlog)
	blogs.DELETE("/:id", admin, h.deleteBlog)

	hero := api.Group("/hero-section")
	hero.GET("", h.listHeroes)
	hero.GET("/active", h.listActiveHeroes)
	hero.GET("/:id", h.getHero)
	hero.POST("", admin, limitBody(maxHeroImage+formOverhead), h.createHero)
	hero.PUT("/:id", admin, limitBody(maxHeroImage+formOverhead), h.updateHero)
	hero.DELETE("/:id", admin, h.deleteHero)

	testimonials := api.Group("/testimonials")
	testimonials.GET("", h.listTestimonials)
	testimonials.GET("/active", h.listActiveTestimonials)
	testimonials.GET("/:id", h.getTestimonial)
	testimonials.POST("", admin, limitBody(maxTestimonialImage+formOverhead), h.createTestimonial)
	testimonials.PUT("/:id", admin, limitBody(maxTestimonialImage+formOverhead), h.updateTestimonial)
	testimonials.DELETE("/:id", admin, h.deleteTestimonial)

	api.POST("/ai-chat", limitBody(maxChatBody), h.chat)

	return router
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
