package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-content-api/internal/domain"
	adminrepo "clinic-content-api/internal/repository/admin"
	blogrepo "clinic-content-api/internal/repository/blog"
	"clinic-content-api/internal/testutil/pgtest"
)

func TestPostgres_BlogLifecycle(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()

	author, err := adminrepo.NewPostgres(pool, nil).Upsert(ctx, domain.Admin{
		Email: "Doc@Clinic.test", PasswordHash: "x", Name: "Dr. Rao", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "doc@clinic.test", author.Email)

	repo := blogrepo.NewPostgres(pool, nil)
	now := time.Now().UTC()
	created, err := repo.Create(ctx, domain.Blog{
		Title: "Hernia Care", Slug: "hernia-care", Content: "<p>x</p>", FeaturedImage: "https://img/1.jpg",
		AuthorID: author.ID, Status: domain.BlogStatusPublished, PublishedAt: &now,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Author)
	assert.Equal(t, "Dr. Rao", created.Author.Name)
	assert.Equal(t, []string{}, created.MetaKeywords)

	_, err = repo.Create(ctx, domain.Blog{Title: "Hernia Care", Slug: "hernia-care", Content: "y", FeaturedImage: "z", Status: domain.BlogStatusDraft})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = repo.Create(ctx, domain.Blog{Title: "Draft", Slug: "draft", Content: "y", FeaturedImage: "z", Status: domain.BlogStatusDraft})
	require.NoError(t, err)

	published, err := repo.List(ctx, blogrepo.ListFilter{Status: domain.BlogStatusPublished})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, created.ID, published[0].ID)

	all, err := repo.List(ctx, blogrepo.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "draft", all[0].Slug, "newest first")

	created.MetaKeywords = []string{"hernia", "surgery"}
	updated, err := repo.Update(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, []string{"hernia", "surgery"}, updated.MetaKeywords)

	bySlug, err := repo.GetBySlug(ctx, "hernia-care")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, author.ID)
	require.NoError(t, err)
	orphan, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.Author)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
}
