// internal/handlers/websocket/ws_handler.go
package websocket

import (
	"net/http"

	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	ws "vms-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token-authenticated, not cookie-authenticated, so origin
	// checks add nothing here.
	CheckOrigin: func(*http.Request) bool { return true },
}

type WSHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *ws.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Connect upgrades an authenticated request to a fleet-event stream. Runs
// behind the auth middleware, which also accepts the token as a query
// parameter for browser websocket clients.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	ws.NewClient(h.hub, conn, userID)
}
