package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mines_arena/internal/ws"
)

// WS upgrades a seated player's connection and attaches it to the room's
// event stream. The player must have joined over REST first; room and
// player come from query params.
func (h *Handler) WS() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Query("room")
		playerID := c.Query("player")
		if roomID == "" || playerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room and player required"})
			return
		}

		r, err := h.Manager.GetRoom(roomID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		seat, ok := r.SeatOf(playerID)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "not seated in this room"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(req *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return req.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Warn("ws upgrade error", "error", err)
			return
		}

		client := ws.NewClient(conn, h.Manager, roomID, playerID, seat)
		if err := client.Attach(); err != nil {
			slog.Warn("ws attach failed", "room", roomID, "error", err)
			_ = conn.Close()
			return
		}
		go client.Run()
	}
}
