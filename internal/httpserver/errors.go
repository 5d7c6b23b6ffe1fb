package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
	authsvc "clinic-content-api/internal/service/auth"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError maps service errors onto status codes. notFound is the message
// used for domain.ErrNotFound, e.g. "Blog not found". Internal failures
// carry the underlying error text in message.
func writeError(c *gin.Context, logger *zap.Logger, err error, notFound string) {
	var verr *domain.ValidationError
	switch {
	case authsvc.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: notFound})
	case errors.Is(err, errFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: errFileTooLarge.Error()})
	case errors.Is(err, media.ErrUpload):
		logger.Error("image upload failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Image upload failed", Message: err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error", Message: err.Error()})
	}
}
