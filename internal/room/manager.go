package room

import (
	"errors"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// ErrCodeSpaceExhausted is returned when minting a room code keeps hitting
// live rooms. The code space is only 9000 values, so collisions are
// possible; creation retries a bounded number of times and then gives up
// rather than overwriting a live room.
var ErrCodeSpaceExhausted = errors.New("could not mint a free room code")

const codeMintAttempts = 8

// Options configures a Manager. Zero fields fall back to defaults matching
// a 10 second turn window, 1 hour room TTL and 10 minute sweep.
type Options struct {
	TurnWindow    time.Duration
	RoomTTL       time.Duration
	SweepInterval time.Duration
}

func (o *Options) withDefaults() {
	if o.TurnWindow <= 0 {
		o.TurnWindow = 10 * time.Second
	}
	if o.RoomTTL <= 0 {
		o.RoomTTL = time.Hour
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = 10 * time.Minute
	}
}

// Manager owns the room map and its cleanup scheduler. Construct one on
// startup, call Start, and Stop it on shutdown. Rooms are independent;
// cross-room requests proceed in parallel, while all mutation of a single
// room serializes on that room's lock.
type Manager struct {
	opts Options

	mu    sync.RWMutex
	rooms map[string]*Room

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewManager(opts Options) *Manager {
	opts.withDefaults()
	return &Manager{
		opts:  opts,
		rooms: make(map[string]*Room),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the periodic idle-room sweep.
func (m *Manager) Start() {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.opts.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep and cancels every pending room timer.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		r.Close()
	}
}

// CreateRoom mints a 4-digit room code and a random seed, and stores a new
// waiting room.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < codeMintAttempts; i++ {
		code := strconv.Itoa(1000 + rand.Intn(9000))
		if _, taken := m.rooms[code]; taken {
			continue
		}
		seed := rand.Int63n(1_000_000)
		r := NewRoom(code, seed, m.opts.TurnWindow)
		m.rooms[code] = r
		roomsCreated.Inc()
		activeRooms.Set(float64(len(m.rooms)))
		slog.Info("room created", "room", code, "seed", seed)
		return r, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// GetRoom looks up a room by code.
func (m *Manager) GetRoom(id string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// JoinRoom seats playerID in the room, starting the match when the second
// seat fills.
func (m *Manager) JoinRoom(id, playerID string) (JoinInfo, error) {
	r, err := m.GetRoom(id)
	if err != nil {
		return JoinInfo{}, err
	}
	return r.Join(playerID)
}

// SubmitAction forwards an action for the given seat to the room's turn
// gate. Unknown rooms and rejected moves both report false.
func (m *Manager) SubmitAction(id string, seat Seat, action ActionType, x, y int, clientTs int64) bool {
	r, err := m.GetRoom(id)
	if err != nil {
		return false
	}
	return r.SubmitAction(seat, action, x, y, clientTs)
}

// Subscribe attaches fn to the room's event stream and returns the
// unsubscribe handle.
func (m *Manager) Subscribe(id string, fn func(Event)) (func(), error) {
	r, err := m.GetRoom(id)
	if err != nil {
		return nil, err
	}
	return r.Subscribe(fn), nil
}

// RoomCount reports how many rooms are held in memory.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// sweep evicts rooms whose last activity is older than the TTL. Rooms in
// the playing state are never evicted: their turn timer drives them to a
// terminal state within one turn window.
func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.opts.RoomTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		if r.State() == StatePlaying {
			continue
		}
		if r.LastActivity().Before(cutoff) {
			r.Close()
			delete(m.rooms, id)
			slog.Info("evicted idle room", "room", id)
		}
	}
	activeRooms.Set(float64(len(m.rooms)))
}
