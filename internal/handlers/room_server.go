// internal/handlers/room_server.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Gauhar-1/Ludo-game/internal/cache"
	"github.com/Gauhar-1/Ludo-game/internal/database"
	"github.com/Gauhar-1/Ludo-game/internal/game"
	"github.com/Gauhar-1/Ludo-game/internal/models"
	"github.com/Gauhar-1/Ludo-game/internal/settlement"
)

// RoomServer is the high-level struct owning the room registry plus the
// external collaborators (durable store, settlement service, action history)
// that individual rooms reach through injected callbacks.
type RoomServer struct {
	Mutex      sync.Mutex
	Rooms      *game.RoomStore
	Settlement *settlement.Client
	Logger     *logrus.Logger
}

func NewRoomServer(logger *logrus.Logger) *RoomServer {
	return &RoomServer{
		Rooms:      game.NewRoomStore(),
		Settlement: settlement.NewClientFromEnv(),
		Logger:     logger,
	}
}

// ResolveRoom returns the live room for an id, rehydrating it from the
// durable store when the in-memory registry has no entry. A room that cannot
// be read from the store is simply created fresh; the read failure is logged
// and affects that lookup only.
func (s *RoomServer) ResolveRoom(ctx context.Context, roomID string) (*game.LudoRoom, error) {
	if roomID == "" {
		return nil, game.ErrNoRoomID
	}
	if r, ok := s.Rooms.GetRoom(roomID); ok {
		return r, nil
	}

	if database.DB != nil {
		snap, err := database.FindRoom(ctx, roomID)
		if err != nil {
			s.Logger.Warnf("room %s: durable store read failed: %v", roomID, err)
		} else if snap != nil {
			restored := game.RestoreRoom(*snap)
			s.wireRoom(restored)
			return s.Rooms.Put(restored), nil
		}
	}

	r, created := s.Rooms.GetOrCreate(roomID)
	if created {
		s.wireRoom(r)
	}
	return r, nil
}

// wireRoom attaches the transport and collaborator callbacks to a room. All
// of them are invoked with the room lock held, so the actual I/O is handed to
// goroutines immediately.
func (s *RoomServer) wireRoom(r *game.LudoRoom) {
	logger := s.Logger

	r.BroadcastFn = func(players []*models.Player, ev game.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("room %s: marshal %s event: %v", r.ID, ev.Type, err)
			return
		}
		conns := make([]*websocket.Conn, 0, len(players))
		for _, p := range players {
			if p.Online && p.Conn != nil {
				conns = append(conns, p.Conn)
			}
		}
		go func() {
			for _, c := range conns {
				writeWithTimeout(c, data, logger, r.ID)
			}
		}()
	}

	r.EmitFn = func(p *models.Player, ev game.Event) {
		if p.Conn == nil {
			return
		}
		data, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("room %s: marshal %s event: %v", r.ID, ev.Type, err)
			return
		}
		conn := p.Conn
		go func() {
			writeWithTimeout(conn, data, logger, r.ID)
		}()
	}

	r.PersistFn = func(snap game.RoomSnapshot) {
		if database.DB == nil {
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := database.UpsertRoom(ctx, snap); err != nil {
				logger.Warnf("room %s: durable store write failed: %v", snap.RoomID, err)
			}
		}()
	}

	r.RecordFn = func(roomID string, actor models.Color, action string, payload map[string]interface{}) {
		rec := cache.RoomActionRecord{
			RoomID:        roomID,
			Actor:         string(actor),
			ActionType:    action,
			ActionPayload: payload,
			Timestamp:     time.Now().UnixMilli(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := cache.PublishRoomAction(ctx, rec); err != nil {
				logger.Debugf("room %s: action history publish failed: %v", roomID, err)
			}
		}()
	}

	r.OnWin = func(roomID string, winner models.Color, winnerUserID uuid.UUID) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Settlement.NotifyWin(ctx, roomID, winnerUserID); err != nil {
				logger.Warnf("room %s: settlement notification failed: %v", roomID, err)
			}
			if database.DB != nil {
				if err := database.SetRoomField(ctx, roomID, "winner", winner); err != nil {
					logger.Warnf("room %s: sealing winner in durable store failed: %v", roomID, err)
				}
			}
		}()
	}
}

// writeWithTimeout performs one bounded websocket write.
func writeWithTimeout(c *websocket.Conn, data []byte, logger *logrus.Logger, roomID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Write(ctx, websocket.MessageText, data); err != nil {
		logger.Warnf("room %s: websocket write failed: %v", roomID, err)
	}
}
