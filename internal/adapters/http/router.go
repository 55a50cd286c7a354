package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/api/internal/adapters/config"
	"github.com/sweetshop/api/internal/adapters/http/controllers"
	"github.com/sweetshop/api/internal/adapters/http/middleware"
	"github.com/sweetshop/api/internal/core/port"
)

type Router struct {
	healthController *controllers.HealthController
	authController   *controllers.AuthController
	sweetController  *controllers.SweetController
	tokens           port.TokenIssuer
	rateLimiter      middleware.RateLimiter
}

func NewRouter(
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	sweetController *controllers.SweetController,
	tokens port.TokenIssuer,
	rateLimiter middleware.RateLimiter,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		sweetController:  sweetController,
		tokens:           tokens,
		rateLimiter:      rateLimiter,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter

	apiGroup := router.Group("/api")
	{
		apiGroup.Use(middleware.LogRequest())
		apiGroup.GET("/health", r.healthController.Health)

		authGroup := apiGroup.Group("/auth")
		authGroup.Use(middleware.RateLimit(rl, 5, 15*time.Minute))
		{
			authGroup.POST("/register", r.authController.Register)
			authGroup.POST("/login", r.authController.Login)
		}

		sweetsGroup := apiGroup.Group("/sweets")
		sweetsGroup.Use(middleware.Authenticate(r.tokens))
		{
			sweetsGroup.GET("", r.sweetController.List)
			sweetsGroup.GET("/search", r.sweetController.Search)
			sweetsGroup.GET("/:id", r.sweetController.GetByID)
			sweetsGroup.POST("/:id/purchase", middleware.RateLimit(rl, 10, 1*time.Minute), r.sweetController.Purchase)

			adminGroup := sweetsGroup.Group("")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminGroup.POST("", r.sweetController.CreateSweet)
				adminGroup.PUT("/:id", r.sweetController.UpdateSweet)
				adminGroup.DELETE("/:id", r.sweetController.DeleteSweet)
				adminGroup.POST("/:id/restock", r.sweetController.Restock)
			}
		}
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
