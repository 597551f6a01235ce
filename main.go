package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bellapacxx/bingo-client/config"
	"github.com/bellapacxx/bingo-client/controllers"
	"github.com/bellapacxx/bingo-client/routes"
	"github.com/bellapacxx/bingo-client/services"
	"github.com/bellapacxx/bingo-client/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(api *controllers.API) *gin.Engine {
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"}, // local UI origin
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, api)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	return r
}

func main() {
	// Load env variables
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}
	cfg := config.FromEnv()

	// Persisted player profile cache
	store := storage.Open(cfg.CachePath)

	// Wire connection, engine and router
	conn := services.NewConnection(cfg)
	sink := services.LogSink{}
	engine := services.NewEngine(conn, store, sink)
	router := services.NewRouter(engine, sink)
	conn.Bind(router.Handle, engine.TransportOpened, engine.TransportClosed, engine.TransportFailed)
	conn.Connect()

	// Local UI-facing API
	api := controllers.NewAPI(engine)
	r := setupRouter(api)

	log.Printf("🎮 Bingo client engine listening on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("[FATAL] Failed to start UI server: %v", err)
	}
}
