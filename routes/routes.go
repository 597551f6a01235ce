package routes

import (
	"github.com/bellapacxx/bingo-client/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, api *controllers.API) {
	g := r.Group("/api")

	// ----------------------
	// Session & game state
	// ----------------------
	g.GET("/status", api.Status) // Full engine snapshot
	g.GET("/board", api.Board)   // Current board layout

	// ----------------------
	// Player actions
	// ----------------------
	g.POST("/join", api.Join)           // Submit identity and stake
	g.POST("/ready", api.ToggleReady)   // Toggle ready status
	g.POST("/leave", api.Leave)         // Leave the game
	g.POST("/mark", api.Mark)           // Toggle a mark on the board
	g.POST("/claim", api.Claim)         // Claim bingo
	g.POST("/chat", api.Chat)           // Send a chat message
	g.POST("/automark", api.AutoMark)   // Auto-mark preference
	g.POST("/reconnect", api.Reconnect) // Manual retry after terminal failure
}
