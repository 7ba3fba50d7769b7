package handler

import (
	"net/http"

	"credauth/internal/auth/signin"
	"credauth/internal/logger"
	"credauth/internal/session"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Callback completes a credential sign-in: authenticate the pair, then
// hand the post-sign-in event to the issuer. Every failure mode the caller
// can see is a generic message; nothing distinguishes an unknown email
// from a wrong password.
func (h *Handler) Callback(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	identity, err := h.credentials.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)

	if err != nil {
		logger.Error("credential lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	event := signin.Event{
		Identity: identity,
		Request: &signin.RequestContext{
			Method: c.Request.Method,
			URL:    c.Request.URL.String(),
		},
	}

	// The record must exist before the client learns the sign-in worked.
	if err := h.issuer.OnSignIn(c.Request.Context(), event, c.Writer); err != nil {
		logger.Error("session issuance failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	logger.Info("login success", map[string]any{
		"user_id": identity.ID,
		"ip":      c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}

// Logout deletes the backing session record (best-effort) and clears the
// cookie. Idempotent: a cookie-less logout is still a 204.
func (h *Handler) Logout(c *gin.Context) {

	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		_ = h.sessionStore.Delete(c.Request.Context(), cookie.Value)

		logger.Info("logout", map[string]any{
			"ip": c.ClientIP(),
		})
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
