package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *handlers) health(c *gin.Context) {
	database := "disconnected"
	if h.pingDB(c.Request.Context()) == nil {
		database = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}

func (h *handlers) ready(c *gin.Context) {
	if err := h.pingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

var errNoDB = errors.New("db not configured")

func (h *handlers) pingDB(ctx context.Context) error {
	if h.deps.DB == nil {
		return errNoDB
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return h.deps.DB.Ping(ctx)
}
