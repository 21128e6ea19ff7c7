package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/internal/auth"
	"gameboxd/backend/internal/service"
)

// RouterConfig carries everything the HTTP layer needs.
type RouterConfig struct {
	JWTSecret string
	Users     *service.UserService
	Reviews   *service.ReviewService
	Lists     *service.ListService
	Games     *service.GameService
}

// NewRouter wires every API route onto a gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	authHandler := NewAuthHandler(cfg.Users)
	userHandler := NewUserHandler(cfg.Users)
	reviewHandler := NewReviewHandler(cfg.Reviews)
	listHandler := NewListHandler(cfg.Lists)
	gameHandler := NewGameHandler(cfg.Games)

	required := auth.AuthMiddleware(cfg.JWTSecret)
	optional := auth.OptionalAuthMiddleware(cfg.JWTSecret)

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Current-user routes (protected)
		meRoutes := apiV1.Group("/me")
		meRoutes.Use(required)
		{
			meRoutes.GET("", userHandler.GetMe)
			meRoutes.PATCH("", userHandler.UpdateMe)
			meRoutes.DELETE("", userHandler.DeleteMe)
		}

		// Public user routes
		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("/:id/stats", userHandler.GetUserStats)
			userRoutes.GET("/:id/profile", userHandler.GetUserProfile)
		}

		// Game catalog routes
		gameRoutes := apiV1.Group("/games")
		{
			// Static routes must be registered before /:id
			gameRoutes.GET("", optional, gameHandler.GetGames)
			gameRoutes.GET("/search", optional, gameHandler.SearchGames)
			gameRoutes.GET("/liked", required, gameHandler.LikedGames)
			gameRoutes.POST("/like", required, gameHandler.LikeGame)
			gameRoutes.GET("/status", required, gameHandler.GetGameStatuses)
			gameRoutes.POST("/status", required, gameHandler.SetGameStatus)
			gameRoutes.GET("/:id", optional, gameHandler.GetGame)
			gameRoutes.GET("/:id/reviews", reviewHandler.GameReviews)
			gameRoutes.GET("/:id/dlcs", gameHandler.GetGameDLCs)
			gameRoutes.DELETE("/:id/status", required, gameHandler.RemoveGameStatus)
		}
		apiV1.GET("/genres", gameHandler.GetGenres)

		// List routes
		listRoutes := apiV1.Group("/lists")
		{
			listRoutes.GET("", required, listHandler.GetLists)
			listRoutes.POST("", required, listHandler.CreateList)
			listRoutes.GET("/:id", optional, listHandler.GetList)
			listRoutes.PATCH("/:id", required, listHandler.UpdateList)
			listRoutes.DELETE("/:id", required, listHandler.DeleteList)
			listRoutes.POST("/:id/games", required, listHandler.AddGameToList)
			listRoutes.DELETE("/:id/items/:itemId", required, listHandler.RemoveListItem)
		}

		// Review routes (protected)
		reviewRoutes := apiV1.Group("/reviews")
		reviewRoutes.Use(required)
		{
			reviewRoutes.POST("", reviewHandler.CreateReview)
			reviewRoutes.GET("/me", reviewHandler.MyReviews)
			reviewRoutes.PATCH("/:id", reviewHandler.UpdateReview)
			reviewRoutes.DELETE("/:id", reviewHandler.DeleteReview)
		}
	}

	return router
}
