// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Gauhar-1/Ludo-game/internal/game"
	"github.com/Gauhar-1/Ludo-game/internal/middleware"
)

// clientMessage is the envelope every client frame arrives in. Fields beyond
// Type are populated per message kind.
type clientMessage struct {
	Type            string `json:"type"`
	RoomID          string `json:"roomId,omitempty"`
	Name            string `json:"name,omitempty"`
	MovedPieceIndex *int   `json:"movedPieceIndex,omitempty"`
}

// RoomWSHandler upgrades /ws/{room_id} to a websocket and drives the room
// engine from the client's frames. The room id in the path is authoritative;
// a roomId inside an envelope is accepted only if it matches.
func RoomWSHandler(s *RoomServer, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := strings.TrimPrefix(r.URL.Path, "/ws/")
		roomID = strings.Trim(roomID, "/")
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		// Identity must be settled before the upgrade so the guest cookie
		// can still ride the handshake response.
		userID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			logger.Warnf("ws auth failed: %v", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:       []string{"ludo"},
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warnf("websocket accept failed: %v", err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		connID := uuid.NewString()
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)
		defer middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)

		readRoomMessages(r.Context(), s, conn, connID, userID, roomID, logger)
	}
}

func readRoomMessages(ctx context.Context, s *RoomServer, conn *websocket.Conn, connID string, userID uuid.UUID, roomID string, logger *logrus.Logger) {
	var room *game.LudoRoom

	defer func() {
		if room == nil {
			return
		}
		room.HandleDisconnect(connID)
		if room.Empty() {
			s.Rooms.DeleteRoom(roomID)
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWsError(ctx, conn, "invalid JSON")
			continue
		}
		if msg.RoomID != "" && msg.RoomID != roomID {
			sendWsError(ctx, conn, "room id mismatch")
			continue
		}

		switch msg.Type {
		case "create-or-join":
			rm, err := s.ResolveRoom(ctx, roomID)
			if err != nil {
				sendWsError(ctx, conn, err.Error())
				continue
			}
			if err := rm.HandleJoin(conn, connID, userID, msg.Name); err != nil {
				switch {
				case errors.Is(err, game.ErrRoomFull):
					sendWsMessage(ctx, conn, map[string]interface{}{"type": game.EventRoomFull})
				default:
					sendWsError(ctx, conn, err.Error())
				}
				continue
			}
			room = rm
		case "roll-dice":
			if room == nil {
				sendWsError(ctx, conn, "join the room first")
				continue
			}
			room.HandleRollDice(connID)
		case "piece-moved":
			if room == nil {
				sendWsError(ctx, conn, "join the room first")
				continue
			}
			if msg.MovedPieceIndex == nil {
				sendWsError(ctx, conn, "missing movedPieceIndex")
				continue
			}
			room.HandleMovePiece(connID, *msg.MovedPieceIndex)
		case "ping":
			sendWsMessage(ctx, conn, map[string]interface{}{"type": "pong"})
		default:
			sendWsError(ctx, conn, "unknown message type")
		}
	}
}

func sendWsMessage(ctx context.Context, conn *websocket.Conn, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.Write(ctx, websocket.MessageText, data)
}

func sendWsError(ctx context.Context, conn *websocket.Conn, message string) {
	sendWsMessage(ctx, conn, map[string]interface{}{
		"type":    game.EventError,
		"message": message,
	})
}
