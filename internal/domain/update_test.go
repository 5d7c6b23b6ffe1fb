package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string { return &v }

func TestField_ZeroValueSkips(t *testing.T) {
	var f Field[string]
	assert.Equal(t, "keep", f.Apply("keep"))
	_, ok := f.Get()
	assert.False(t, ok)
}

func TestPresent_AppliesEmptyString(t *testing.T) {
	assert.Equal(t, "", Present(strPtr("")).Apply("old"))
	assert.Equal(t, "old", Present[string](nil).Apply("old"))
}

func TestNonBlank_IgnoresBlankValues(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want string
	}{
		{"absent", nil, "old"},
		{"empty", strPtr(""), "old"},
		{"spaces", strPtr("   "), "old"},
		{"value", strPtr("new"), "new"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NonBlank(tc.in).Apply("old"))
		})
	}
}

func TestMarkPublished_SetsOnce(t *testing.T) {
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := Blog{Status: BlogStatusDraft}
	b.MarkPublished(first)
	assert.Nil(t, b.PublishedAt)

	b.Status = BlogStatusPublished
	b.MarkPublished(first)
	if assert.NotNil(t, b.PublishedAt) {
		assert.Equal(t, first, *b.PublishedAt)
	}

	b.Status = BlogStatusDraft
	b.MarkPublished(first.Add(time.Hour))
	b.Status = BlogStatusPublished
	b.MarkPublished(first.Add(2 * time.Hour))
	assert.Equal(t, first, *b.PublishedAt)
}

func TestMissingFields(t *testing.T) {
	assert.NoError(t, MissingFields())
	err := MissingFields("title", "content")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Missing required fields: title, content", err.Error())
}
