package domain

import "time"

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

type Testimonial struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Rating      int       `json:"rating"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidRating reports whether r is within the accepted star range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
