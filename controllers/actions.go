package controllers

import (
	"net/http"

	"github.com/bellapacxx/bingo-client/services"
	"github.com/gin-gonic/gin"
)

// API translates HTTP calls from the local UI into plain engine calls.
type API struct {
	Engine *services.Engine
}

func NewAPI(engine *services.Engine) *API {
	return &API{Engine: engine}
}

// Status returns one consistent snapshot of session, player and game.
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, a.Engine.Status())
}

// Board returns the current layout, 404 outside a game.
func (a *API) Board(c *gin.Context) {
	board := a.Engine.Board()
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active board"})
		return
	}
	c.JSON(http.StatusOK, board)
}

type joinRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Stake    int    `json:"stake"`
	BoardID  int    `json:"boardId"`
	GameType string `json:"gameType"`
}

func (a *API) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Engine.Join(req.Name, req.Phone, req.Stake, req.BoardID, req.GameType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}

func (a *API) ToggleReady(c *gin.Context) {
	status, err := a.Engine.ToggleReady()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (a *API) Leave(c *gin.Context) {
	a.Engine.Leave()
	c.JSON(http.StatusOK, gin.H{"message": "left"})
}

type markRequest struct {
	Number int `json:"number"`
}

func (a *API) Mark(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Engine.ToggleMark(req.Number); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "toggled"})
}

func (a *API) Claim(c *gin.Context) {
	if err := a.Engine.Claim(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "claim submitted"})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (a *API) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Engine.SendChat(req.Message); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sent"})
}

type autoMarkRequest struct {
	Enabled bool `json:"enabled"`
}

func (a *API) AutoMark(c *gin.Context) {
	var req autoMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Engine.SetAutoMark(req.Enabled)
	c.JSON(http.StatusOK, gin.H{"autoMark": req.Enabled})
}

// Reconnect is the manual retry after a terminal connectivity failure.
func (a *API) Reconnect(c *gin.Context) {
	a.Engine.Reconnect()
	c.JSON(http.StatusOK, gin.H{"message": "reconnecting"})
}
