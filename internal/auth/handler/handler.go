package handler

import (
	"context"
	"log"

	"credauth/internal/auth"
	"credauth/internal/auth/signin"
	"credauth/internal/session"

	"github.com/gin-gonic/gin"
)

// CredentialService is the slice of the credentials service the handlers
// need. Narrowed to an interface so tests can stub it.
type CredentialService interface {
	Authenticate(ctx context.Context, email, password string) (*auth.Identity, error)
	SetPassword(ctx context.Context, userID, plaintext string) error
}

type Handler struct {
	credentials  CredentialService
	issuer       *signin.Issuer
	sessionStore session.Store
	secure       bool
}

func NewHandler(
	credentials CredentialService,
	issuer *signin.Issuer,
	sessionStore session.Store,
	secure bool,
) *Handler {
	return &Handler{
		credentials:  credentials,
		issuer:       issuer,
		sessionStore: sessionStore,
		secure:       secure,
	}
}

// RegisterRoutes mounts the public auth endpoints. The callback path
// deliberately carries both the "credentials" and "callback" markers the
// session issuer gates on.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/callback/credentials", h.Callback)
	r.POST("/auth/logout", h.Logout)

	for _, route := range r.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}
}
