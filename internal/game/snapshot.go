package game

import (
	"github.com/google/uuid"

	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// SeatSnapshot is the durable projection of a seat: everything except the
// live connection, which is meaningless across restarts.
type SeatSnapshot struct {
	UserID uuid.UUID    `json:"userId"`
	Name   string       `json:"name"`
	Color  models.Color `json:"color"`
}

// RoomSnapshot is the JSON shape persisted per room. It is detached from the
// live room: mutating a snapshot never touches in-memory state.
type RoomSnapshot struct {
	RoomID       string                 `json:"roomId"`
	Players      []SeatSnapshot         `json:"players"`
	GameStarted  bool                   `json:"gameStarted"`
	Turn         models.Color           `json:"turn,omitempty"`
	DiceValue    int                    `json:"diceValue,omitempty"`
	SixCount     int                    `json:"sixCount,omitempty"`
	Positions    map[models.Color][]int `json:"positions"`
	PlaceHolders []*Occupant            `json:"placeHolders"`
	Logs         []models.LogEntry      `json:"logs"`
	Winner       models.Color           `json:"winner,omitempty"`
}

// Snapshot returns a detached copy of the room state.
func (r *LudoRoom) Snapshot() RoomSnapshot {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.snapshotLocked()
}

// snapshotLocked builds the snapshot under an already-held lock.
func (r *LudoRoom) snapshotLocked() RoomSnapshot {
	snap := RoomSnapshot{
		RoomID:       r.ID,
		GameStarted:  r.GameStarted,
		Turn:         r.Turn,
		DiceValue:    r.DiceValue,
		SixCount:     r.SixCount,
		Positions:    r.copyPositions(),
		PlaceHolders: make([]*Occupant, RingSize),
		Logs:         append([]models.LogEntry(nil), r.Logs...),
		Winner:       r.Winner,
	}
	for i, occ := range r.PlaceHolders {
		if occ != nil {
			cp := *occ
			snap.PlaceHolders[i] = &cp
		}
	}
	for _, p := range r.Players {
		snap.Players = append(snap.Players, SeatSnapshot{UserID: p.UserID, Name: p.Name, Color: p.Color})
	}
	return snap
}

// RestoreRoom rebuilds an in-memory room from a durable snapshot. Every seat
// starts offline; players reattach through HandleJoin, which also re-arms the
// countdown once the game is live again.
func RestoreRoom(snap RoomSnapshot) *LudoRoom {
	r := NewLudoRoom(snap.RoomID)
	r.GameStarted = snap.GameStarted
	r.Turn = snap.Turn
	r.DiceValue = snap.DiceValue
	r.SixCount = snap.SixCount
	r.Winner = snap.Winner
	r.Logs = append([]models.LogEntry(nil), snap.Logs...)
	for c, steps := range snap.Positions {
		if len(steps) == Pieces {
			r.Positions[c] = append([]int(nil), steps...)
		}
	}
	for i, occ := range snap.PlaceHolders {
		if occ != nil && i < RingSize {
			cp := *occ
			r.PlaceHolders[i] = &cp
		}
	}
	for _, s := range snap.Players {
		r.Players = append(r.Players, &models.Player{
			UserID: s.UserID,
			Name:   s.Name,
			Color:  s.Color,
			Online: false,
		})
	}
	return r
}
