package room

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(Options{
		TurnWindow:    testWindow,
		RoomTTL:       time.Hour,
		SweepInterval: time.Hour,
	})
}

func TestCreateRoomCodeFormat(t *testing.T) {
	m := newTestManager()

	for i := 0; i < 50; i++ {
		r, err := m.CreateRoom()
		require.NoError(t, err)

		code, err := strconv.Atoi(r.ID)
		require.NoError(t, err, "room code %q is not numeric", r.ID)
		assert.GreaterOrEqual(t, code, 1000)
		assert.LessOrEqual(t, code, 9999)

		got, err := m.GetRoom(r.ID)
		require.NoError(t, err)
		assert.Same(t, r, got)
	}

	assert.Equal(t, 50, m.RoomCount())
}

func TestJoinUnknownRoom(t *testing.T) {
	m := newTestManager()

	_, err := m.JoinRoom("0000", "p1")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = m.Subscribe("0000", func(Event) {})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.False(t, m.SubmitAction("0000", SeatA, ActionReveal, 0, 0, 0))
}

func TestJoinSeatsThroughManager(t *testing.T) {
	m := newTestManager()
	r, err := m.CreateRoom()
	require.NoError(t, err)

	infoA, err := m.JoinRoom(r.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, SeatA, infoA.You)

	infoB, err := m.JoinRoom(r.ID, "p2")
	require.NoError(t, err)
	assert.Equal(t, SeatB, infoB.You)
	assert.Equal(t, infoA.Seed, infoB.Seed, "peers must agree on the seed")

	_, err = m.JoinRoom(r.ID, "p3")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestSweepEvictsIdleRooms(t *testing.T) {
	m := newTestManager()

	idle, err := m.CreateRoom()
	require.NoError(t, err)
	fresh, err := m.CreateRoom()
	require.NoError(t, err)

	idle.mu.Lock()
	idle.lastActivity = time.Now().Add(-2 * time.Hour)
	idle.mu.Unlock()

	m.sweep()

	_, err = m.GetRoom(idle.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound, "idle room survived the sweep")
	_, err = m.GetRoom(fresh.ID)
	assert.NoError(t, err, "fresh room was evicted")
}

func TestSweepSparesPlayingRooms(t *testing.T) {
	m := newTestManager()

	r, err := m.CreateRoom()
	require.NoError(t, err)
	_, err = m.JoinRoom(r.ID, "p1")
	require.NoError(t, err)
	_, err = m.JoinRoom(r.ID, "p2")
	require.NoError(t, err)
	require.Equal(t, StatePlaying, r.State())

	r.mu.Lock()
	r.lastActivity = time.Now().Add(-2 * time.Hour)
	r.mu.Unlock()

	m.sweep()

	_, err = m.GetRoom(r.ID)
	assert.NoError(t, err, "live match was evicted")
	r.Close()
}

func TestSweepEvictsFinishedRooms(t *testing.T) {
	m := newTestManager()

	r, err := m.CreateRoom()
	require.NoError(t, err)
	r.diff.MineCount = 1
	r.diff.Width = 2
	r.diff.Height = 2
	_, _ = m.JoinRoom(r.ID, "p1")
	_, _ = m.JoinRoom(r.ID, "p2")

	// A steps on the mine, match ends
	b := mineCell(t, r, r.diff)
	require.True(t, r.SubmitAction(SeatA, ActionReveal, b.X, b.Y, 0))
	require.Equal(t, StateFinished, r.State())

	r.mu.Lock()
	r.lastActivity = time.Now().Add(-2 * time.Hour)
	r.mu.Unlock()

	m.sweep()
	_, err = m.GetRoom(r.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestManagerStartStop(t *testing.T) {
	m := NewManager(Options{
		TurnWindow:    testWindow,
		RoomTTL:       time.Hour,
		SweepInterval: 10 * time.Millisecond,
	})
	m.Start()

	r, err := m.CreateRoom()
	require.NoError(t, err)
	r.mu.Lock()
	r.lastActivity = time.Now().Add(-2 * time.Hour)
	r.mu.Unlock()

	// let at least one sweep run
	assert.Eventually(t, func() bool {
		_, err := m.GetRoom(r.ID)
		return err != nil
	}, time.Second, 10*time.Millisecond)

	m.Stop()
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.withDefaults()
	assert.Equal(t, 10*time.Second, o.TurnWindow)
	assert.Equal(t, time.Hour, o.RoomTTL)
	assert.Equal(t, 10*time.Minute, o.SweepInterval)
}
