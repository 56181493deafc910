package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "investmate/internal/docs" // Import swagger docs
	"investmate/internal/handlers"
	"investmate/internal/middleware"
	"investmate/internal/session"
)

const healthTimeout = 2 * time.Second

type routerDeps struct {
	clientOrigin      string
	sessions          session.Store
	authHandler       *handlers.AuthHandler
	investmentHandler *handlers.InvestmentHandler
	ready             func(ctx context.Context) error
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(d.clientOrigin))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Session(d.sessions))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "InvestMate API running")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if d.ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := d.ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Sign-in flow
	auth := router.Group("/auth")
	auth.GET("/google", d.authHandler.GoogleLogin)
	auth.GET("/google/callback", d.authHandler.GoogleCallback)
	auth.GET("/logout", d.authHandler.Logout)
	auth.GET("/failure", d.authHandler.Failure)

	api := router.Group("/api")
	api.GET("/me", d.authHandler.Me)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.RequireUser())

	investments := protected.Group("/investments")
	investments.GET("", d.investmentHandler.ListInvestments)
	investments.POST("", d.investmentHandler.CreateInvestment)
	investments.PUT("/:id", d.investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", d.investmentHandler.DeleteInvestment)

	protected.GET("/portfolio", d.investmentHandler.GetPortfolio)

	return router
}
