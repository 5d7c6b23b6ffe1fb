package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/config"
	"clinic-content-api/internal/db"
	"clinic-content-api/internal/logging"
	adminrepo "clinic-content-api/internal/repository/admin"
	blogrepo "clinic-content-api/internal/repository/blog"
	herorepo "clinic-content-api/internal/repository/hero"
	testimonialrepo "clinic-content-api/internal/repository/testimonial"
	blogsvc "clinic-content-api/internal/service/blog"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
	"clinic-content-api/internal/seed"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	adminIn     seed.AdminInput
	fixturePath string
	authorEmail string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create admins and load starter content",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logger, err = logging.New("seed", cfg.LogLevel, cfg.IsDevelopment())
		return err
	},
	SilenceUsage: true,
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin, or reset the password of an existing one",
	RunE:  runAdmin,
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Load hero sections, testimonials and blogs from a YAML file",
	Long: `Load starter content from a YAML fixtures file.

Entries that already exist are skipped:
  - hero sections by title
  - testimonials by name
  - blogs by slug`,
	RunE: runContent,
}

func init() {
	adminCmd.Flags().StringVar(&adminIn.Email, "email", "", "admin email (required)")
	adminCmd.Flags().StringVar(&adminIn.Password, "password", "", "admin password, at least 8 characters (required)")
	adminCmd.Flags().StringVar(&adminIn.Name, "name", "Admin", "display name")
	adminCmd.Flags().StringVar(&adminIn.Role, "role", "admin", "role embedded in issued tokens")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")

	contentCmd.Flags().StringVar(&fixturePath, "file", "fixtures/content.yaml", "fixtures file")
	contentCmd.Flags().StringVar(&authorEmail, "author", "", "email of the admin credited as blog author (required)")
	_ = contentCmd.MarkFlagRequired("author")

	rootCmd.AddCommand(adminCmd, contentCmd)
}

func main() {
	err := rootCmd.Execute()
	if logger == nil {
		if err != nil {
			os.Exit(1)
		}
		return
	}
	os.Exit(logging.Finish(logger, "seed failed", err))
}

func runAdmin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	a, err := seed.Admin(ctx, adminrepo.NewPostgres(pool, logger), adminIn)
	if err != nil {
		return err
	}
	logger.Info("admin ready", zap.String("id", a.ID), zap.String("email", a.Email), zap.String("role", a.Role))
	return nil
}

func runContent(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	f, err := os.Open(fixturePath)
	if err != nil {
		return err
	}
	defer f.Close()
	fixtures, err := seed.LoadFixtures(f)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	author, err := adminrepo.NewPostgres(pool, logger).GetByEmail(ctx, authorEmail)
	if err != nil {
		return fmt.Errorf("find author %q: %w", authorEmail, err)
	}

	// Share the API cache so seeded content is not hidden behind stale lists.
	contentCache, closeCache, err := cache.Open(ctx, cfg.RedisURL, cfg.CachePrefix, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	svc := seed.Services{
		Heroes:       herosvc.New(herorepo.NewPostgres(pool, logger), nil, contentCache, cfg.CacheTTL, logger),
		Testimonials: testimonialsvc.New(testimonialrepo.NewPostgres(pool, logger), nil, contentCache, cfg.CacheTTL, logger),
		Blogs:        blogsvc.New(blogrepo.NewPostgres(pool, logger), nil, contentCache, cfg.CacheTTL, logger),
	}
	res, err := seed.Content(ctx, svc, fixtures, author.ID, logger)
	if err != nil {
		return err
	}
	fmt.Printf("created %d, skipped %d\n", res.Created, res.Skipped)
	return nil
}
