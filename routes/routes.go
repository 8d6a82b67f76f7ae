package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shivamkr-03/plantGuardAI/handlers"
	"github.com/shivamkr-03/plantGuardAI/middleware"
)

func SetupRoutes(h *handlers.HandlerManager, secret []byte, origins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "PlantGuard backend running"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.AuthenticationHandler.SignUp)
		auth.POST("/login", h.AuthenticationHandler.Login)
	}

	// Routes that require a verified token.
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(secret))
	{
		protected.GET("/profile", h.ProfileHandler.Get)
		protected.PUT("/profile", h.ProfileHandler.Update)
		protected.POST("/history", h.HistoryHandler.Save)
		protected.GET("/history", h.HistoryHandler.List)
	}

	// Prediction works with or without credentials; a token only decides
	// whether the result lands in the caller's history.
	r.POST("/predict", middleware.OptionalAuth(secret), h.PredictHandler.Predict)

	return r
}
