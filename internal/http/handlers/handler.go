package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mines_arena/internal/game"
	"mines_arena/internal/room"
)

// Handler serves the room REST surface.
type Handler struct {
	Manager *room.Manager
}

func NewHandler(m *room.Manager) *Handler {
	return &Handler{Manager: m}
}

// CreateRoom mints a new room and returns its code and seed.
// POST /room
func (h *Handler) CreateRoom(c *gin.Context) {
	r, err := h.Manager.CreateRoom()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	_, seed, _, _ := r.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"roomId":  r.ID,
		"seed":    seed,
		"success": true,
	})
}

// JoinRoom seats the caller in a room. The server mints the player id; the
// client uses it on the websocket afterwards.
// POST /room/:roomId/join
func (h *Handler) JoinRoom(c *gin.Context) {
	roomID := c.Param("roomId")
	playerID := "player_" + uuid.NewString()

	info, err := h.Manager.JoinRoom(roomID, playerID)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrRoomFull):
			c.JSON(http.StatusBadRequest, gin.H{"error": "room is full"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to join room"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"seed":     info.Seed,
		"you":      info.You,
		"players":  info.Players,
		"playerId": playerID,
	})
}

// GetRoom returns the public room record.
// GET /room/:roomId
func (h *Handler) GetRoom(c *gin.Context) {
	r, err := h.Manager.GetRoom(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	id, seed, players, createdAt := r.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"seed":      seed,
		"players":   players,
		"createdAt": createdAt.UnixMilli(),
	})
}

// Difficulties returns the preset board configurations.
// GET /difficulties
func (h *Handler) Difficulties(c *gin.Context) {
	c.JSON(http.StatusOK, game.Difficulties)
}
