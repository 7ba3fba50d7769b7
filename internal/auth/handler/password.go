package handler

import (
	"errors"
	"net/http"

	"credauth/internal/auth/credentials"
	"credauth/internal/logger"
	"credauth/internal/middleware"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	Password string `form:"password" json:"password"`
}

// ChangePassword replaces the authenticated user's password. This is the
// only endpoint that applies the password policy; login never does.
// Mounted behind the session middleware.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.credentials.SetPassword(c.Request.Context(), userID, req.Password)

	switch {
	case errors.Is(err, credentials.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "password must be at least 8 characters with a letter and a digit",
		})
	case errors.Is(err, credentials.ErrUnknownUser):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
	case err != nil:
		logger.Error("password change failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
	}
}
