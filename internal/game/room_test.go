// internal/game/room_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// mockSink collects events, snapshots and action records instead of touching
// websockets, Postgres or Redis.
type mockSink struct {
	mu        sync.Mutex
	events    []Event
	perPlayer map[string][]Event // keyed by ConnID
	snaps     []RoomSnapshot
	actions   []string
}

func newMockSink() *mockSink {
	return &mockSink{perPlayer: make(map[string][]Event)}
}

func (m *mockSink) wire(r *LudoRoom) {
	r.BroadcastFn = func(players []*models.Player, ev Event) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = append(m.events, ev)
	}
	r.EmitFn = func(p *models.Player, ev Event) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.perPlayer[p.ConnID] = append(m.perPlayer[p.ConnID], ev)
	}
	r.PersistFn = func(snap RoomSnapshot) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.snaps = append(m.snaps, snap)
	}
	r.RecordFn = func(roomID string, actor models.Color, action string, payload map[string]interface{}) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.actions = append(m.actions, action)
	}
}

func (m *mockSink) eventsOfType(t EventType) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, ev := range m.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (m *mockSink) lastPlayerEvent(connID string) *Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	evs := m.perPlayer[connID]
	if len(evs) == 0 {
		return nil
	}
	return &evs[len(evs)-1]
}

func (m *mockSink) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	m.perPlayer = make(map[string][]Event)
	m.snaps = nil
	m.actions = nil
}

// queueRolls replaces the dice with a fixed sequence; rolling past the end
// fails the test.
func queueRolls(t *testing.T, r *LudoRoom, values ...int) {
	t.Helper()
	i := 0
	r.RollFn = func() int {
		require.Less(t, i, len(values), "dice rolled more times than queued")
		v := values[i]
		i++
		return v
	}
}

// setupTestRoom seats two players and returns the started room. Timers are
// shortened so timeout paths can run inside a test.
func setupTestRoom(t *testing.T) (*LudoRoom, []*models.Player, *mockSink) {
	t.Helper()
	r := NewLudoRoom("room-1")
	r.TurnDuration = 200 * time.Millisecond
	r.AutoPassDelay = 20 * time.Millisecond
	r.RevokeDelay = 20 * time.Millisecond

	mb := newMockSink()
	mb.wire(r)

	require.NoError(t, r.HandleJoin(nil, "conn0", uuid.New(), "alice"))
	require.NoError(t, r.HandleJoin(nil, "conn1", uuid.New(), "bob"))

	snap := r.Snapshot()
	require.True(t, snap.GameStarted)
	require.Len(t, snap.Players, 2)

	t.Cleanup(func() {
		r.Mu.Lock()
		r.cancelTurnTimer()
		r.Mu.Unlock()
	})

	mb.clear()
	return r, players(r), mb
}

func players(r *LudoRoom) []*models.Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	out := make([]*models.Player, len(r.Players))
	copy(out, r.Players)
	return out
}

func hasLog(snap RoomSnapshot, message string) bool {
	for _, l := range snap.Logs {
		if l.Message == message {
			return true
		}
	}
	return false
}

func TestJoinAssignsComplementaryColors(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	snap := r.Snapshot()

	first := ps[0].Color
	assert.Contains(t, []models.Color{models.Blue, models.Red}, first)
	assert.Equal(t, ComplementOf(first), ps[1].Color)

	// The first seat opens the match.
	assert.Equal(t, first, snap.Turn)
	assert.True(t, hasLog(snap, "Battle Commenced!"))
	assert.True(t, hasLog(snap, string(first)+" Joined the Arena"))

	// All pieces start in base.
	for _, c := range models.Colors {
		assert.Equal(t, []int{-1, -1, -1, -1}, snap.Positions[c])
	}
}

func TestJoinEmitsRoomDataAndTurn(t *testing.T) {
	r := NewLudoRoom("room-2")
	mb := newMockSink()
	mb.wire(r)

	require.NoError(t, r.HandleJoin(nil, "c0", uuid.New(), "alice"))
	assert.NotEmpty(t, mb.eventsOfType(EventRoomData))
	assert.Empty(t, mb.eventsOfType(EventUpdateTurn), "no turn before the second seat")

	require.NoError(t, r.HandleJoin(nil, "c1", uuid.New(), "bob"))
	turns := mb.eventsOfType(EventUpdateTurn)
	require.NotEmpty(t, turns)
	assert.Equal(t, r.Snapshot().Turn, turns[len(turns)-1].Color)
	assert.NotEmpty(t, mb.eventsOfType(EventTimerSync))
}

func TestJoinThirdIdentityRejected(t *testing.T) {
	r, _, _ := setupTestRoom(t)
	err := r.HandleJoin(nil, "conn2", uuid.New(), "carol")
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, players(r), 2)
}

func TestJoinRequiresUserID(t *testing.T) {
	r := NewLudoRoom("room-3")
	err := r.HandleJoin(nil, "c0", uuid.Nil, "ghost")
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestReconnectKeepsSeatAndColor(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	p1 := ps[1]
	userID := p1.UserID
	color := p1.Color

	r.HandleDisconnect("conn1")
	assert.False(t, players(r)[1].Online)

	require.NoError(t, r.HandleJoin(nil, "conn1b", userID, "bob"))
	after := players(r)
	assert.Len(t, after, 2)
	assert.True(t, after[1].Online)
	assert.Equal(t, color, after[1].Color)
	assert.Equal(t, "conn1b", after[1].ConnID)
}

func TestLogsCappedNewestFirst(t *testing.T) {
	r := NewLudoRoom("room-4")
	r.Mu.Lock()
	for i := 0; i < maxLogs+10; i++ {
		r.addLog("entry", "system")
	}
	r.addLog("latest", "system")
	r.Mu.Unlock()

	snap := r.Snapshot()
	assert.Len(t, snap.Logs, maxLogs)
	assert.Equal(t, "latest", snap.Logs[0].Message)
}
