package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-content-api/internal/domain"
	blogsvc "clinic-content-api/internal/service/blog"
)

const blogNotFound = "Blog not found"

func (h *handlers) listBlogs(c *gin.Context) {
	blogs, err := h.deps.Blogs.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *handlers) getBlog(c *gin.Context) {
	id, ok := pathID(c, blogNotFound)
	if !ok {
		return
	}
	b, err := h.deps.Blogs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) getBlogBySlug(c *gin.Context) {
	b, err := h.deps.Blogs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) createBlog(c *gin.Context) {
	p, err := parsePayload(c, "featuredImage", maxBlogImage)
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	in := blogsvc.CreateInput{
		Title:           value(p.str("title")),
		Excerpt:         value(p.str("excerpt")),
		Content:         value(p.str("content")),
		FeaturedImage:   value(p.str("featuredImage")),
		Image:           p.file,
		MetaTitle:       value(p.str("metaTitle")),
		MetaDescription: value(p.str("metaDescription")),
		Status:          value(p.str("status")),
		AuthorID:        adminFrom(c).ID,
	}
	if kw := p.list("metaKeywords"); kw != nil {
		in.MetaKeywords = *kw
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}

	b, err := h.deps.Blogs.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handlers) updateBlog(c *gin.Context) {
	id, ok := pathID(c, blogNotFound)
	if !ok {
		return
	}
	p, err := parsePayload(c, "featuredImage", maxBlogImage)
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	in := blogsvc.UpdateInput{
		Title:           domain.NonBlank(p.str("title")),
		Content:         domain.NonBlank(p.str("content")),
		Excerpt:         domain.Present(p.str("excerpt")),
		MetaTitle:       domain.Present(p.str("metaTitle")),
		MetaDescription: domain.Present(p.str("metaDescription")),
		MetaKeywords:    domain.Present(p.list("metaKeywords")),
		Status:          domain.NonBlank(p.str("status")),
		FeaturedImage:   value(p.str("featuredImage")),
		Image:           p.file,
	}
	if err := p.Err(); err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}

	b, err := h.deps.Blogs.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) deleteBlog(c *gin.Context) {
	id, ok := pathID(c, blogNotFound)
	if !ok {
		return
	}
	if err := h.deps.Blogs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err, blogNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}
