package domain

import "time"

type HeroSection struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ImageAlt    string    `json:"imageAlt"`
	CTAText     string    `json:"ctaText"`
	CTALink     string    `json:"ctaLink"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
