package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-content-api/internal/domain"
	adminrepo "clinic-content-api/internal/repository/admin"
	"clinic-content-api/internal/testutil/pgtest"
)

func TestPostgres_AdminUpsertAndLogin(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := adminrepo.NewPostgres(pool, nil)

	first, err := repo.Upsert(ctx, domain.Admin{Email: " Doc@Clinic.TEST ", PasswordHash: "h1", Name: "Doc", Role: "admin"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, domain.Admin{Email: "doc@clinic.test", PasswordHash: "h2", Name: "Dr. Doc", Role: "editor"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "h2", second.PasswordHash)

	got, err := repo.GetByEmail(ctx, "DOC@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, "editor", got.Role)
	assert.Nil(t, got.LastLogin)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(ctx, got.ID, at))
	require.NoError(t, repo.UpdatePassword(ctx, got.ID, "h3"))

	got, err = repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(at))
	assert.Equal(t, "h3", got.PasswordHash)

	_, err = repo.GetByEmail(ctx, "nobody@clinic.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
