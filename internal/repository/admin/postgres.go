package admin

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/logging"
	"clinic-content-api/internal/repository/pgutil"
)

const adminColumns = `id::text, email, password_hash, name, role, last_login, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanAdmin(r.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanAdmin(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE admins SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		r.logger.Error("admin repo: touch last login", zap.String("id", id), zap.Error(err))
		return pgutil.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error("admin repo: update password", zap.String("id", id), zap.Error(err))
		return pgutil.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, a domain.Admin) (*domain.Admin, error) {
	const q = `
INSERT INTO admins (email, password_hash, name, role)
VALUES (lower($1), $2, $3, $4)
ON CONFLICT (lower(email)) DO UPDATE
SET password_hash = EXCLUDED.password_hash,
    name = EXCLUDED.name,
    role = EXCLUDED.role,
    updated_at = now()
RETURNING ` + adminColumns
	return r.scanAdmin(r.pool.QueryRow(ctx, q, strings.TrimSpace(a.Email), a.PasswordHash, a.Name, a.Role))
}

func (r *postgresRepo) scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		mapped := pgutil.MapError(err)
		if mapped != domain.ErrNotFound {
			r.logger.Error("admin repo: scan", zap.Error(err))
		}
		return nil, mapped
	}
	return &a, nil
}
