package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// Rejection reasons for join and action requests. Rule violations inside a
// turn are resolved silently (no state change) and never become errors.
var (
	ErrNoRoomID       = errors.New("missing room id")
	ErrNoUserID       = errors.New("missing user id")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game already in progress")
)

const maxLogs = 50

// LudoRoom holds the entire authoritative state for a single match instance.
// Every mutation happens under Mu; the injected callbacks are invoked while
// the lock is held and must not call back into the room.
type LudoRoom struct {
	ID string

	Players      []*models.Player
	GameStarted  bool
	Turn         models.Color // empty before start and while nobody acts
	DiceValue    int          // 0 means no committed roll this turn
	SixCount     int
	Positions    map[models.Color][]int
	PlaceHolders [RingSize]*Occupant
	Logs         []models.LogEntry // newest first, capped at maxLogs
	Winner       models.Color

	TurnDuration  time.Duration
	AutoPassDelay time.Duration
	RevokeDelay   time.Duration

	// turnSeq increments whenever the timer is re-armed. Timer callbacks
	// capture the value at arm time and bail out if it moved on, so a stale
	// expiry can never act on a newer turn.
	turnSeq   int
	turnTimer *time.Timer
	passTimer *time.Timer

	Mu sync.Mutex

	// RollFn produces a dice value in [1,6]. Overridable for tests.
	RollFn func() int

	BroadcastFn BroadcastFunc
	EmitFn      EmitFunc
	OnWin       OnWinFunc
	PersistFn   PersistFunc
	RecordFn    RecordFunc
}

// NewLudoRoom builds an empty room for the given id.
func NewLudoRoom(id string) *LudoRoom {
	r := &LudoRoom{
		ID:            id,
		Positions:     make(map[models.Color][]int, len(models.Colors)),
		TurnDuration:  15 * time.Second,
		AutoPassDelay: 1500 * time.Millisecond,
		RevokeDelay:   time.Second,
		RollFn:        func() int { return rand.Intn(6) + 1 },
	}
	for _, c := range models.Colors {
		r.Positions[c] = []int{-1, -1, -1, -1}
	}
	return r
}

// HandleJoin seats a new player or reattaches a returning one. The connection
// is registered on the seat so broadcasts can reach it. Returns ErrRoomFull
// when both seats are taken by other identities or the match already began.
func (r *LudoRoom) HandleJoin(conn *websocket.Conn, connID string, userID uuid.UUID, name string) error {
	if userID == uuid.Nil {
		return ErrNoUserID
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()

	// Reconnect path: the durable identity keeps its seat and color.
	if p := r.playerByUser(userID); p != nil {
		p.ConnID = connID
		p.Conn = conn
		p.Online = true
		if name != "" {
			p.Name = name
		}
		if r.GameStarted && r.Winner == "" {
			r.armTurnTimer()
		}
		r.broadcastRoomData()
		r.persist()
		return nil
	}

	if len(r.Players) >= 2 || r.GameStarted {
		return ErrRoomFull
	}

	var color models.Color
	if len(r.Players) == 0 {
		color = seedColors[rand.Intn(len(seedColors))]
	} else {
		color = ComplementOf(r.Players[0].Color)
	}

	p := &models.Player{
		ConnID: connID,
		UserID: userID,
		Name:   name,
		Color:  color,
		Online: true,
		Conn:   conn,
	}
	r.Players = append(r.Players, p)
	r.addLog(string(color)+" Joined the Arena", string(color))
	r.record(color, "join", map[string]interface{}{"userId": userID.String()})

	if len(r.Players) == 2 {
		r.GameStarted = true
		r.Turn = r.Players[0].Color
		r.addLog("Battle Commenced!", "system")
		r.armTurnTimer()
		r.fireEvent(Event{Type: EventUpdateTurn, Color: r.Turn})
	}

	r.broadcastRoomData()
	r.persist()
	return nil
}

// playerByUser returns the seat owned by a persistent identity, or nil.
// Assumes lock is held.
func (r *LudoRoom) playerByUser(userID uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// playerByConn returns the seat attached to a live connection, or nil.
// Assumes lock is held.
func (r *LudoRoom) playerByConn(connID string) *models.Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// addLog prepends an entry to the rolling log. Assumes lock is held.
func (r *LudoRoom) addLog(message, color string) {
	entry := models.LogEntry{Message: message, Color: color, Timestamp: time.Now().UnixMilli()}
	r.Logs = append([]models.LogEntry{entry}, r.Logs...)
	if len(r.Logs) > maxLogs {
		r.Logs = r.Logs[:maxLogs]
	}
}

// fireEvent hands an event to the broadcaster with the current seat list.
// Assumes lock is held.
func (r *LudoRoom) fireEvent(ev Event) {
	if r.BroadcastFn == nil {
		return
	}
	players := make([]*models.Player, len(r.Players))
	copy(players, r.Players)
	r.BroadcastFn(players, ev)
}

// fireEventTo sends an event to a single seat. Assumes lock is held.
func (r *LudoRoom) fireEventTo(p *models.Player, ev Event) {
	if r.EmitFn == nil || p == nil {
		return
	}
	r.EmitFn(p, ev)
}

// broadcastRoomData pushes the full, idempotent room snapshot to every seat.
// Assumes lock is held.
func (r *LudoRoom) broadcastRoomData() {
	r.fireEvent(Event{
		Type:      EventRoomData,
		Players:   r.Players,
		Turn:      r.Turn,
		Logs:      r.Logs,
		Positions: r.copyPositions(),
		Winner:    r.Winner,
	})
}

// copyPositions returns a detached copy of the positions table so broadcasts
// and snapshots never alias live state. Assumes lock is held.
func (r *LudoRoom) copyPositions() map[models.Color][]int {
	out := make(map[models.Color][]int, len(r.Positions))
	for c, steps := range r.Positions {
		cp := make([]int, len(steps))
		copy(cp, steps)
		out[c] = cp
	}
	return out
}

// persist mirrors the committed state to the durable store. Assumes lock is
// held; the callback runs the actual write asynchronously.
func (r *LudoRoom) persist() {
	if r.PersistFn == nil {
		return
	}
	r.PersistFn(r.snapshotLocked())
}

// record appends one action record to the history queue. Assumes lock is held.
func (r *LudoRoom) record(actor models.Color, action string, payload map[string]interface{}) {
	if r.RecordFn == nil {
		return
	}
	r.RecordFn(r.ID, actor, action, payload)
}

// Empty reports whether no seat has a live connection. Used by the store to
// garbage-collect abandoned rooms that never produced a winner.
func (r *LudoRoom) Empty() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, p := range r.Players {
		if p.Online {
			return false
		}
	}
	return true
}
