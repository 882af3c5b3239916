package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Color identifies one of the four board colors. Only two colors are ever
// seated in a room; the other two stay parked in base.
type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Blue   Color = "blue"
)

// Colors lists every board color in entry-offset order.
var Colors = []Color{Blue, Red, Green, Yellow}

// Valid reports whether c is one of the four board colors.
func (c Color) Valid() bool {
	switch c {
	case Red, Green, Yellow, Blue:
		return true
	}
	return false
}

// Player is one seat in a room. UserID is the durable identity used to
// reattach a fresh connection after a reconnect; ConnID and Conn track the
// live socket and change across reconnects. Color never changes once assigned.
type Player struct {
	ConnID string          `json:"id"`
	UserID uuid.UUID       `json:"userId"`
	Name   string          `json:"name"`
	Color  Color           `json:"color"`
	Online bool            `json:"isOnline"`
	Conn   *websocket.Conn `json:"-"`
}

// LogEntry is one line of the room's rolling event log. Color is the acting
// color, or "system" for neutral messages.
type LogEntry struct {
	Message   string `json:"message"`
	Color     string `json:"color"`
	Timestamp int64  `json:"timestamp"`
}
