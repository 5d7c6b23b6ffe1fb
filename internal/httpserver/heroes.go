package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-content-api/internal/domain"
	herosvc "clinic-content-api/internal/service/hero"
)

const heroNotFound = "Hero section not found"

func (h *handlers) listHeroes(c *gin.Context) {
	h.respondHeroes(c, false)
}

func (h *handlers) listActiveHeroes(c *gin.Context) {
	h.respondHeroes(c, true)
}

func (h *handlers) respondHeroes(c *gin.Context, activeOnly bool) {
	list, err := h.deps.Heroes.List(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getHero(c *gin.Context) {
	id, ok := pathID(c, heroNotFound)
	if !ok {
		return
	}
	hero, err := h.deps.Heroes.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	c.JSON(http.StatusOK, hero)
}

func (h *handlers) createHero(c *gin.Context) {
	p, err := parsePayload(c, "image", maxHeroImage)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	in := herosvc.CreateInput{
		Title:       value(p.str("title")),
		Subtitle:    value(p.str("subtitle")),
		Description: value(p.str("description")),
		Image:       value(p.str("image")),
		File:        p.file,
		ImageAlt:    value(p.str("imageAlt")),
		CTAText:     value(p.str("ctaText")),
		CTALink:     value(p.str("ctaLink")),
		IsActive:    p.boolean("isActive"),
	}
	if order := p.integer("order"); order != nil {
		in.Order = *order
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}

	hero, err := h.deps.Heroes.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	c.JSON(http.StatusCreated, hero)
}

func (h *handlers) updateHero(c *gin.Context) {
	id, ok := pathID(c, heroNotFound)
	if !ok {
		return
	}
	p, err := parsePayload(c, "image", maxHeroImage)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	in := herosvc.UpdateInput{
		Title:       domain.NonBlank(p.str("title")),
		Subtitle:    domain.Present(p.str("subtitle")),
		Description: domain.Present(p.str("description")),
		ImageAlt:    domain.Present(p.str("imageAlt")),
		CTAText:     domain.Present(p.str("ctaText")),
		CTALink:     domain.Present(p.str("ctaLink")),
		IsActive:    domain.Present(p.boolean("isActive")),
		Order:       domain.Present(p.integer("order")),
		Image:       value(p.str("image")),
		File:        p.file,
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}

	hero, err := h.deps.Heroes.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	c.JSON(http.StatusOK, hero)
}

func (h *handlers) deleteHero(c *gin.Context) {
	id, ok := pathID(c, heroNotFound)
	if !ok {
		return
	}
	if err := h.deps.Heroes.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, heroNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hero section deleted successfully"})
}
