package hero

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/testutil/memstore"
)

func TestCreate_RequiresTitleAndImage(t *testing.T) {
	store := memstore.New()
	svc := New(store.Heroes, nil, nil, 0, nil)

	_, err := svc.Create(context.Background(), CreateInput{Title: "Welcome"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"image"}, verr.Fields)

	list, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_DefaultsActive(t *testing.T) {
	svc := New(memstore.New().Heroes, nil, nil, 0, nil)
	h, err := svc.Create(context.Background(), CreateInput{Title: "Welcome", Image: "https://img/h.jpg"})
	require.NoError(t, err)
	assert.True(t, h.IsActive)
	assert.Equal(t, "https://img/h.jpg", h.Image)
}

func TestList_ActiveOrdering(t *testing.T) {
	svc := New(memstore.New().Heroes, nil, cache.NewMemory(), time.Minute, nil)
	ctx := context.Background()
	inactive := false

	second, err := svc.Create(ctx, CreateInput{Title: "B", Image: "u", Order: 2})
	require.NoError(t, err)
	first, err := svc.Create(ctx, CreateInput{Title: "A", Image: "u", Order: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "C", Image: "u", Order: 0, IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "C", all[0].Title)
}

func TestUpdate_PresenceSemantics(t *testing.T) {
	svc := New(memstore.New().Heroes, nil, cache.NewMemory(), time.Minute, nil)
	ctx := context.Background()
	h, err := svc.Create(ctx, CreateInput{Title: "Welcome", Subtitle: "Sub", Image: "https://img/h.jpg"})
	require.NoError(t, err)

	_, err = svc.List(ctx, true)
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, h.ID, UpdateInput{
		Title:    domain.NonBlank(&empty),
		Subtitle: domain.Present(&empty),
		IsActive: domain.Set(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", updated.Title)
	assert.Equal(t, "", updated.Subtitle)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "https://img/h.jpg", updated.Image)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestDelete(t *testing.T) {
	svc := New(memstore.New().Heroes, nil, nil, 0, nil)
	ctx := context.Background()
	h, err := svc.Create(ctx, CreateInput{Title: "Welcome", Image: "u"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, h.ID))
	_, err = svc.Get(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
