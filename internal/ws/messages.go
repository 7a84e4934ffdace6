package ws

import (
	"encoding/json"
	"fmt"

	"mines_arena/internal/game"
	"mines_arena/internal/room"
)

// client -> server message types
const (
	MsgJoin   = "join"
	MsgAction = "action"
	MsgPing   = "ping"
)

// ClientMessage is the inbound wire envelope.
type ClientMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Action   string `json:"action,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	ClientTs int64  `json:"client_ts,omitempty"`
}

type roomCreatedWire struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	Seed   int64  `json:"seed"`
}

type joinedWire struct {
	Type    string    `json:"type"`
	Players []string  `json:"players"`
	Seed    int64     `json:"seed"`
	You     room.Seat `json:"you"`
}

type startWire struct {
	Type string `json:"type"`
	Seed int64  `json:"seed"`
}

type actionWire struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"player_id"`
	Action   room.ActionType `json:"action"`
	X        int             `json:"x"`
	Y        int             `json:"y"`
	ClientTs int64           `json:"client_ts"`
}

type stateWire struct {
	Type        string       `json:"type"`
	Revealed    []game.Point `json:"revealed"`
	Flags       []game.Point `json:"flags"`
	CurrentSeat room.Seat    `json:"current_seat"`
	TurnEndsAt  int64        `json:"turn_ends_at"`
}

type resultWire struct {
	Type   string            `json:"type"`
	Winner room.Seat         `json:"winner"`
	Reason room.ResultReason `json:"reason"`
}

// EncodeEvent serializes a room event into its wire envelope.
func EncodeEvent(ev room.Event) ([]byte, error) {
	switch e := ev.(type) {
	case room.RoomCreatedEvent:
		return json.Marshal(roomCreatedWire{Type: e.EventType(), RoomID: e.RoomID, Seed: e.Seed})
	case room.JoinedEvent:
		return json.Marshal(joinedWire{Type: e.EventType(), Players: e.Players, Seed: e.Seed, You: e.You})
	case room.StartEvent:
		return json.Marshal(startWire{Type: e.EventType(), Seed: e.Seed})
	case room.ActionEvent:
		return json.Marshal(actionWire{Type: e.EventType(), PlayerID: e.PlayerID, Action: e.Action, X: e.X, Y: e.Y, ClientTs: e.ClientTs})
	case room.StateEvent:
		return json.Marshal(stateWire{Type: e.EventType(), Revealed: e.Revealed, Flags: e.Flags, CurrentSeat: e.CurrentSeat, TurnEndsAt: e.TurnEndsAt})
	case room.ResultEvent:
		return json.Marshal(resultWire{Type: e.EventType(), Winner: e.Winner, Reason: e.Reason})
	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}
}
