package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	res, err := h.deps.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err, "Admin not found")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true, "admin": adminFrom(c).Summary()})
}

func (h *handlers) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	err := h.deps.Auth.ChangePassword(c.Request.Context(), adminFrom(c).ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(c, h.logger, err, "Admin not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// pathID returns the :id parameter. Ids that are not UUIDs cannot exist, so
// they are answered with 404 here.
func pathID(c *gin.Context, notFound string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: notFound})
		return "", false
	}
	return id, true
}
