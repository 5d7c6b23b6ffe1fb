package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-content-api/internal/domain"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
)

const testimonialNotFound = "Testimonial not found"

func (h *handlers) listTestimonials(c *gin.Context) {
	h.respondTestimonials(c, false)
}

func (h *handlers) listActiveTestimonials(c *gin.Context) {
	h.respondTestimonials(c, true)
}

func (h *handlers) respondTestimonials(c *gin.Context, activeOnly bool) {
	list, err := h.deps.Testimonials.List(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getTestimonial(c *gin.Context) {
	id, ok := pathID(c, testimonialNotFound)
	if !ok {
		return
	}
	t, err := h.deps.Testimonials.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) createTestimonial(c *gin.Context) {
	p, err := parsePayload(c, "image", maxTestimonialImage)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	in := testimonialsvc.CreateInput{
		Name:        value(p.str("name")),
		Designation: value(p.str("designation")),
		Content:     value(p.str("content")),
		Image:       value(p.str("image")),
		File:        p.file,
		Rating:      p.integer("rating"),
		IsActive:    p.boolean("isActive"),
	}
	if order := p.integer("order"); order != nil {
		in.Order = *order
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}

	t, err := h.deps.Testimonials.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handlers) updateTestimonial(c *gin.Context) {
	id, ok := pathID(c, testimonialNotFound)
	if !ok {
		return
	}
	p, err := parsePayload(c, "image", maxTestimonialImage)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	in := testimonialsvc.UpdateInput{
		Name:        domain.NonBlank(p.str("name")),
		Content:     domain.NonBlank(p.str("content")),
		Designation: domain.Present(p.str("designation")),
		Rating:      domain.Present(p.integer("rating")),
		IsActive:    domain.Present(p.boolean("isActive")),
		Order:       domain.Present(p.integer("order")),
		Image:       value(p.str("image")),
		File:        p.file,
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}

	t, err := h.deps.Testimonials.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) deleteTestimonial(c *gin.Context) {
	id, ok := pathID(c, testimonialNotFound)
	if !ok {
		return
	}
	if err := h.deps.Testimonials.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, testimonialNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
