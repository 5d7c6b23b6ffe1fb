package domain

import "time"

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// AuthorRef is the admin data joined onto a blog when it is read.
type AuthorRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Blog struct {
	ID              string     `json:"_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	FeaturedImage   string     `json:"featuredImage"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	MetaKeywords    []string   `json:"metaKeywords"`
	AuthorID        string     `json:"-"`
	Author          *AuthorRef `json:"author"`
	Status          string     `json:"status"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ValidBlogStatus reports whether s is an accepted blog status.
func ValidBlogStatus(s string) bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}

// MarkPublished sets PublishedAt the first time the blog is saved as
// published. Later saves never move it, whatever the status does.
func (b *Blog) MarkPublished(now time.Time) {
	if b.Status == BlogStatusPublished && b.PublishedAt == nil {
		t := now
		b.PublishedAt = &t
	}
}
