package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	blogrepo "clinic-content-api/internal/repository/blog"
	blogsvc "clinic-content-api/internal/service/blog"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
	"clinic-content-api/internal/testutil/memstore"
)

const fixturesYAML = `
heroSections:
  - title: Advanced Laparoscopic Care
    image: https://img.test/hero.jpg
    order: 1
testimonials:
  - name: Meera K
    content: Smooth surgery and quick recovery.
    rating: 5
  - name: Arjun S
    content: Very caring team.
blogs:
  - title: Robotic Hernia Repair
    content: <p>What to expect.</p>
    featuredImage: https://img.test/blog.jpg
    metaKeywords: [hernia, robotic]
    status: published
`

func TestAdmin_UpsertResetsPassword(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	first, err := Admin(ctx, store.Admins, AdminInput{Email: "Doc@Clinic.test", Password: "first-pass"})
	require.NoError(t, err)
	assert.Equal(t, "doc@clinic.test", first.Email)
	assert.Equal(t, "admin", first.Role)

	second, err := Admin(ctx, store.Admins, AdminInput{Email: "doc@clinic.test", Password: "second-pass", Name: "Dr. Rao"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(second.PasswordHash), []byte("second-pass")))
}

func TestAdmin_Validation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, err := Admin(ctx, store.Admins, AdminInput{Email: "not-an-email", Password: "long-enough"})
	assert.Error(t, err)
	_, err = Admin(ctx, store.Admins, AdminInput{Email: "a@b.c", Password: "short"})
	assert.Error(t, err)
}

func TestLoadFixtures_UnknownKey(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader("heroes:\n  - title: x\n"))
	assert.Error(t, err)

	f, err := LoadFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Blogs)
}

func TestContent_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	admin, err := Admin(ctx, store.Admins, AdminInput{Email: "doc@clinic.test", Password: "first-pass"})
	require.NoError(t, err)

	svc := Services{
		Heroes:       herosvc.New(store.Heroes, nil, nil, 0, nil),
		Testimonials: testimonialsvc.New(store.Testimonials, nil, nil, 0, nil),
		Blogs:        blogsvc.New(store.Blogs, nil, nil, 0, nil),
	}
	f, err := LoadFixtures(strings.NewReader(fixturesYAML))
	require.NoError(t, err)

	res, err := Content(ctx, svc, f, admin.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 4}, res)

	res, err = Content(ctx, svc, f, admin.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 4}, res)

	blogs, err := store.Blogs.List(ctx, blogrepo.ListFilter{})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "robotic-hernia-repair", blogs[0].Slug)
	require.NotNil(t, blogs[0].Author)
	assert.Equal(t, "doc@clinic.test", blogs[0].Author.Email)
}
