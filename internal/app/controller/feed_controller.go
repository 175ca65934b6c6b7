package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/tmoreau/boutique-backend/internal/middleware"
	"github.com/tmoreau/boutique-backend/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The admin panel may be served from another origin; auth happens via
	// the token middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedController struct {
	hub *websocket.Hub
}

func NewFeedController(hub *websocket.Hub) *FeedController {
	return &FeedController{
		hub: hub,
	}
}

// Connect upgrades the request and attaches the admin panel to the order
// feed
// GET /api/v1/admin/feed?token=...
func (ctrl *FeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, nil)
		return
	}

	client := &websocket.Client{
		Hub:  ctrl.hub,
		Conn: &websocket.Conn{Conn: conn},
		Send: make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
