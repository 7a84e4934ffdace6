package room

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"mines_arena/internal/game"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

const (
	StateWaiting  = "waiting"
	StatePlaying  = "playing"
	StateFinished = "finished"
)

// Room holds one two-seat match. All mutation goes through its mutex: seat
// assignment, turn transitions, timer arm/cancel and broadcasts are
// serialized, so a timeout can never race a just-accepted action.
type Room struct {
	ID        string
	Seed      int64
	CreatedAt time.Time

	turnWindow time.Duration
	diff       game.Difficulty

	mu           sync.Mutex
	state        string
	players      []string // seat A first, then seat B
	board        *game.Board
	currentSeat  Seat
	turnDeadline time.Time
	result       *MatchResult
	lastActivity time.Time

	timer    *time.Timer
	timerGen uint64

	subs    []*subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Event)
}

// JoinInfo is what a successful join returns to the caller.
type JoinInfo struct {
	Seed    int64
	You     Seat
	Players []string
}

func NewRoom(id string, seed int64, turnWindow time.Duration) *Room {
	now := time.Now()
	return &Room{
		ID:           id,
		Seed:         seed,
		CreatedAt:    now,
		turnWindow:   turnWindow,
		diff:         game.MultiDifficulty(),
		state:        StateWaiting,
		lastActivity: now,
	}
}

// Join assigns the next open seat. The first joiner gets seat A, the second
// seat B; filling the second seat starts the match: the server builds its
// own board replica from the shared seed, arms seat A's turn timer and
// broadcasts Joined followed by Start so every peer generates the same
// board locally.
func (r *Room) Join(playerID string) (JoinInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateWaiting || len(r.players) >= 2 {
		return JoinInfo{}, ErrRoomFull
	}

	r.players = append(r.players, playerID)
	r.lastActivity = time.Now()

	you := SeatA
	if len(r.players) == 2 {
		you = SeatB
	}
	info := JoinInfo{Seed: r.Seed, You: you, Players: append([]string(nil), r.players...)}

	slog.Info("player joined", "room", r.ID, "seat", you, "players", len(r.players))

	if len(r.players) == 2 {
		board, err := game.Generate(r.diff.Width, r.diff.Height, r.diff.MineCount, r.Seed, nil)
		if err != nil {
			// only possible with a broken preset; fail the join, keep the room waiting
			r.players = r.players[:1]
			return JoinInfo{}, err
		}
		r.board = board
		r.state = StatePlaying
		r.currentSeat = SeatA
		r.turnDeadline = time.Now().Add(r.turnWindow)
		r.armTimerLocked()
		matchesStarted.Inc()
	}

	r.broadcastLocked(JoinedEvent{Players: info.Players, Seed: r.Seed, You: you})
	if r.state == StatePlaying {
		r.broadcastLocked(StartEvent{Seed: r.Seed})
	}

	return info, nil
}

// SubmitAction validates and applies one move. Invalid moves (wrong seat,
// non-playing room, target cell not actionable) are silent no-ops: no state
// change, no broadcast, no turn flip. It reports whether the action was
// accepted.
func (r *Room) SubmitAction(seat Seat, action ActionType, x, y int, clientTs int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePlaying || seat != r.currentSeat {
		actionsRejected.Inc()
		return false
	}

	var revealed []game.Point
	switch action {
	case ActionReveal:
		if !r.board.InBounds(x, y) || r.board.At(x, y).State != game.StateHidden {
			actionsRejected.Inc()
			return false
		}
		revealed = game.Reveal(r.board, x, y)
	case ActionFlag:
		if !game.ToggleFlag(r.board, x, y) {
			actionsRejected.Inc()
			return false
		}
	default:
		actionsRejected.Inc()
		return false
	}

	// The action is in. Cancel the pending turn timer before any effect so
	// an in-flight timeout waiting on the mutex sees a bumped generation.
	r.cancelTimerLocked()
	r.lastActivity = time.Now()
	actionsAccepted.WithLabelValues(string(action)).Inc()

	playerID := r.playerForSeatLocked(seat)
	r.broadcastLocked(ActionEvent{PlayerID: playerID, Action: action, X: x, Y: y, ClientTs: clientTs})

	if len(revealed) > 0 && game.HasLost(r.board) {
		r.finishLocked(MatchResult{Winner: seat.Other(), Reason: ReasonMine})
		return true
	}
	if game.HasWon(r.board) {
		r.finishLocked(MatchResult{Winner: seat, Reason: ReasonAllSafe})
		return true
	}

	r.currentSeat = seat.Other()
	r.turnDeadline = time.Now().Add(r.turnWindow)
	r.armTimerLocked()
	r.broadcastLocked(r.stateEventLocked())
	return true
}

// Subscribe registers a callback invoked for every broadcast on this room,
// in event order. Callbacks run synchronously under the room's lock and
// must not call back into the room; hand the event off to a channel.
func (r *Room) Subscribe(fn func(Event)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.subs = append(r.subs, &subscriber{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the public view of the room for the REST surface.
func (r *Room) Snapshot() (id string, seed int64, players []string, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ID, r.Seed, append([]string(nil), r.players...), r.CreatedAt
}

// SeatOf returns the seat held by playerID, if any.
func (r *Room) SeatOf(playerID string) (Seat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p == playerID {
			if i == 0 {
				return SeatA, true
			}
			return SeatB, true
		}
	}
	return "", false
}

// State returns the lifecycle state: waiting, playing or finished.
func (r *Room) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Result returns the terminal match result, or nil while the room is live.
func (r *Room) Result() *MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return nil
	}
	res := *r.result
	return &res
}

// LastActivity is the timestamp of the most recent join or accepted action.
// The idle sweep keys off this, not CreatedAt, so live matches survive.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Close stops the pending turn timer. Called when the manager shuts down or
// evicts the room.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelTimerLocked()
}

func (r *Room) armTimerLocked() {
	r.cancelTimerLocked()
	gen := r.timerGen
	r.timer = time.AfterFunc(r.turnWindow, func() {
		r.handleTimeout(gen)
	})
}

func (r *Room) cancelTimerLocked() {
	r.timerGen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// handleTimeout fires when a turn window elapses with no accepted action.
// The seat on turn forfeits. A stale timer that lost the race to an action
// observes a bumped generation and aborts.
func (r *Room) handleTimeout(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.timerGen || r.state != StatePlaying {
		return
	}
	slog.Info("turn timed out", "room", r.ID, "seat", r.currentSeat)
	r.finishLocked(MatchResult{Winner: r.currentSeat.Other(), Reason: ReasonTimeout})
}

func (r *Room) finishLocked(res MatchResult) {
	r.cancelTimerLocked()
	r.state = StateFinished
	r.result = &res
	r.lastActivity = time.Now()
	matchesFinished.WithLabelValues(string(res.Reason)).Inc()
	slog.Info("match finished", "room", r.ID, "winner", res.Winner, "reason", res.Reason)
	r.broadcastLocked(ResultEvent{Winner: res.Winner, Reason: res.Reason})
}

func (r *Room) stateEventLocked() StateEvent {
	var revealed, flags []game.Point
	for y := 0; y < r.board.Height; y++ {
		for x := 0; x < r.board.Width; x++ {
			switch r.board.Cells[y][x].State {
			case game.StateRevealed:
				revealed = append(revealed, game.Point{X: x, Y: y})
			case game.StateFlagged:
				flags = append(flags, game.Point{X: x, Y: y})
			}
		}
	}
	return StateEvent{
		Revealed:    revealed,
		Flags:       flags,
		CurrentSeat: r.currentSeat,
		TurnEndsAt:  r.turnDeadline.UnixMilli(),
	}
}

func (r *Room) playerForSeatLocked(seat Seat) string {
	idx := 0
	if seat == SeatB {
		idx = 1
	}
	if idx < len(r.players) {
		return r.players[idx]
	}
	return ""
}

// broadcastLocked delivers ev to subscribers in registration order. Caller
// holds the room mutex, which is what guarantees per-room FIFO delivery.
func (r *Room) broadcastLocked(ev Event) {
	for _, s := range r.subs {
		s.fn(ev)
	}
}
