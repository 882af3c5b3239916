package game

import (
	"github.com/google/uuid"

	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// EventType is an enum-like type for outbound room notifications.
type EventType string

const (
	EventRoomData      EventType = "room-data"
	EventDiceRolled    EventType = "dice-rolled"
	EventUpdatePiece   EventType = "update-piece"
	EventUpdateTurn    EventType = "update-turn"
	EventTimerSync     EventType = "timer-sync"
	EventDeclareWinner EventType = "declare-winner"
	EventGamePaused    EventType = "game-paused"
	EventRoomFull      EventType = "room-full"
	EventError         EventType = "error"
)

// Event is the wire envelope pushed to clients. Snapshots are full state
// replacements, never deltas: a client applies the latest room-data or
// update-piece wholesale.
type Event struct {
	Type EventType `json:"type"`

	Players     []*models.Player       `json:"players,omitempty"`
	Turn        models.Color           `json:"turn,omitempty"`
	Color       models.Color           `json:"color,omitempty"`
	Value       int                    `json:"value,omitempty"`
	Logs        []models.LogEntry      `json:"logs,omitempty"`
	Positions   map[models.Color][]int `json:"positions,omitempty"`
	NewPosition map[models.Color][]int `json:"newPosition,omitempty"`
	Winner      models.Color           `json:"winner,omitempty"`
	TimeLeft    int64                  `json:"timeLeft,omitempty"`
	TotalTime   int64                  `json:"totalTime,omitempty"`
	UserID      string                 `json:"userId,omitempty"`
	Message     string                 `json:"message,omitempty"`
}

// BroadcastFunc delivers an event to every listed player. It is invoked with
// the room lock held and must not call back into the room; implementations
// hand the write off to a goroutine.
type BroadcastFunc func(players []*models.Player, ev Event)

// EmitFunc delivers an event to a single player, same locking contract as
// BroadcastFunc.
type EmitFunc func(p *models.Player, ev Event)

// OnWinFunc is invoked once when a room produces a winner, carrying the
// winning player's persistent identity for settlement.
type OnWinFunc func(roomID string, winner models.Color, winnerUserID uuid.UUID)

// PersistFunc mirrors a committed room state to the durable store. Called
// after each state transition with a detached snapshot; implementations run
// the write asynchronously and treat failures as log-only.
type PersistFunc func(snap RoomSnapshot)

// RecordFunc appends one action record to the history queue.
type RecordFunc func(roomID string, actor models.Color, action string, payload map[string]interface{})
