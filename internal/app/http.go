package app

import (
	"context"

	"credauth/internal/auth/credentials"
	"credauth/internal/auth/handler"
	"credauth/internal/auth/signin"
	"credauth/internal/auth/strategy"
	"credauth/internal/config"
	"credauth/internal/middleware"
	"credauth/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	credentialService := credentials.NewService(infra.DB, cfg.AuthSecret)
	issuer := signin.NewIssuer(sessionStore, cfg.IsProduction())

	// The stateless-token strategy is disabled process-wide: the persisted
	// session record is the only artifact a credential sign-in produces.
	tokens := strategy.Disabled{}

	authHandler := handler.NewHandler(
		credentialService,
		issuer,
		sessionStore,
		cfg.IsProduction(),
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		userID, _ := middleware.UserIDFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"user_id": userID,
		})
	})

	api.POST("/auth/password", authHandler.ChangePassword)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
