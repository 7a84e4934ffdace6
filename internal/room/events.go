package room

import "mines_arena/internal/game"

type Seat string

const (
	SeatA Seat = "A"
	SeatB Seat = "B"
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

type ActionType string

const (
	ActionReveal ActionType = "reveal"
	ActionFlag   ActionType = "flag"
)

type ResultReason string

const (
	ReasonMine    ResultReason = "mine"
	ReasonTimeout ResultReason = "timeout"
	ReasonAllSafe ResultReason = "allSafe"
)

// MatchResult is the terminal verdict of a room, recorded exactly once.
type MatchResult struct {
	Winner Seat         `json:"winner"`
	Reason ResultReason `json:"reason"`
}

// Event is the closed union of room broadcasts. Subscribers receive every
// event for their room in the order it occurred; peers replay the Action
// stream over the shared seed to reconstruct identical boards, so ordering
// is part of the contract.
type Event interface {
	EventType() string
}

// RoomCreatedEvent announces a freshly minted room.
type RoomCreatedEvent struct {
	RoomID string
	Seed   int64
}

// JoinedEvent announces a seat being taken. You is the seat assigned to the
// player who just joined.
type JoinedEvent struct {
	Players []string
	Seed    int64
	You     Seat
}

// StartEvent tells every peer to generate its board from the shared seed.
type StartEvent struct {
	Seed int64
}

// ActionEvent relays an accepted move to all subscribers.
type ActionEvent struct {
	PlayerID string
	Action   ActionType
	X, Y     int
	ClientTs int64
}

// StateEvent is a full resync snapshot emitted after each accepted action.
type StateEvent struct {
	Revealed    []game.Point
	Flags       []game.Point
	CurrentSeat Seat
	TurnEndsAt  int64 // unix milliseconds
}

// ResultEvent carries the terminal match result.
type ResultEvent struct {
	Winner Seat
	Reason ResultReason
}

func (RoomCreatedEvent) EventType() string { return "room_created" }
func (JoinedEvent) EventType() string      { return "joined" }
func (StartEvent) EventType() string       { return "start" }
func (ActionEvent) EventType() string      { return "action" }
func (StateEvent) EventType() string       { return "state" }
func (ResultEvent) EventType() string      { return "result" }
