package admin

import (
	"context"
	"time"

	"clinic-content-api/internal/domain"
)

// Repository persists and fetches admins.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Upsert inserts an admin or, when the email exists, resets its
	// password, name and role.
	Upsert(ctx context.Context, a domain.Admin) (*domain.Admin, error)
}
