package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-content-api/internal/service/chat"
)

type chatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

// chat always answers 200 unless the message is missing; provider failures
// are hidden behind the canned fallback.
func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	reply, err := h.deps.Chat.Reply(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		writeError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, reply)
}
