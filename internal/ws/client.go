package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"mines_arena/internal/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	sendBuffer = 256
)

// Client bridges one websocket connection to a room's event stream. Events
// arrive on Send in broadcast order; the write pump drains them to the
// peer, preserving FIFO per connection.
type Client struct {
	RoomID   string
	PlayerID string
	Seat     room.Seat

	conn    *websocket.Conn
	manager *room.Manager
	Send    chan []byte
	Done    chan struct{}

	unsubscribe func()
}

func NewClient(conn *websocket.Conn, manager *room.Manager, roomID, playerID string, seat room.Seat) *Client {
	return &Client{
		RoomID:   roomID,
		PlayerID: playerID,
		Seat:     seat,
		conn:     conn,
		manager:  manager,
		Send:     make(chan []byte, sendBuffer),
		Done:     make(chan struct{}),
	}
}

// Attach subscribes the client to its room's event stream. Must be called
// before Run so no broadcast slips past between upgrade and subscription.
func (c *Client) Attach() error {
	unsub, err := c.manager.Subscribe(c.RoomID, c.enqueueEvent)
	if err != nil {
		return err
	}
	c.unsubscribe = unsub
	return nil
}

// Run pumps the connection until it drops. Blocks until the read pump
// exits.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// enqueueEvent runs on the room's broadcast path and must not block. A
// client that cannot drain its buffer loses the event and catches up from
// the next state snapshot.
func (c *Client) enqueueEvent(ev room.Event) {
	data, err := EncodeEvent(ev)
	if err != nil {
		slog.Error("encode event", "room", c.RoomID, "error", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		slog.Warn("send buffer full, dropping event",
			"room", c.RoomID, "player", c.PlayerID, "event", ev.EventType())
	}
}

func (c *Client) readPump() {
	defer func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		_ = c.conn.Close()
		close(c.Done)
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("ws read error", "room", c.RoomID, "player", c.PlayerID, "error", err)
			}
			return
		}
		c.handleMessage(raw)
	}
}

func (c *Client) handleMessage(raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.Debug("ws bad message", "room", c.RoomID, "error", err)
		return
	}

	switch msg.Type {
	case MsgAction:
		action := room.ActionType(msg.Action)
		if action != room.ActionReveal && action != room.ActionFlag {
			return
		}
		// rejected moves are deliberate no-ops; the UI may race the turn
		// state and that is not an error
		c.manager.SubmitAction(c.RoomID, c.Seat, action, msg.X, msg.Y, msg.ClientTs)
	case MsgJoin, MsgPing:
		// join happens at upgrade time via query params; pings are
		// answered at the protocol level by the pong handler
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
