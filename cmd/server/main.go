package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"gameboxd/backend/internal/cache"
	"gameboxd/backend/internal/config"
	"gameboxd/backend/internal/database"
	"gameboxd/backend/internal/handler"
	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/service"
	"gameboxd/backend/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           GameBoxd API
// @version         1.0
// @description     This is the API for the GameBoxd service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	// Pick the store. Memory is for local development without postgres.
	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		log.Println("Using in-memory store; data will not survive a restart.")
		st = store.NewMemory()
	default:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database handle: %v", err)
		}
		defer sqlDB.Close()
		st = store.NewGorm(db)
	}

	// Catalog cache is optional; with no redis the gateway just hits the
	// provider every time.
	var catalogCache rawg.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		cancel()
		defer redisClient.Close()
		catalogCache = cache.NewCatalogCache(redisClient, 5*time.Minute)
	}

	catalog := rawg.NewClient(cfg.RawgBaseURL, cfg.RawgAPIKey, catalogCache)

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Users:     service.NewUserService(st, cfg.JWTSecret, cfg.TokenTTL(), catalog),
		Reviews:   service.NewReviewService(st, catalog),
		Lists:     service.NewListService(st, catalog),
		Games:     service.NewGameService(st, catalog),
	})

	// Swagger route. doc.json comes from the swag-generated docs package:
	// run `swag init -g cmd/server/main.go` and blank-import
	// gameboxd/backend/docs to serve it.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := ":" + cfg.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}
