// internal/database/room.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Gauhar-1/Ludo-game/internal/game"
)

// The rooms table holds one JSONB snapshot per room id:
//
//	CREATE TABLE rooms (
//	    room_id    text PRIMARY KEY,
//	    state      jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
//
// Reconnect support relies on this row outliving the in-memory registry;
// stale rows are reaped by external TTL policy, not by this service.

// FindRoom loads the persisted snapshot for a room id. A missing row returns
// (nil, nil): the caller treats it as "room never existed" and starts fresh.
func FindRoom(ctx context.Context, roomID string) (*game.RoomSnapshot, error) {
	var raw []byte
	q := `SELECT state FROM rooms WHERE room_id = $1`
	if err := DB.QueryRow(ctx, q, roomID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query room %s: %w", roomID, err)
	}

	var snap game.RoomSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode room %s state: %w", roomID, err)
	}
	return &snap, nil
}

// UpsertRoom writes the full snapshot, creating the row if absent.
func UpsertRoom(ctx context.Context, snap game.RoomSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode room %s state: %w", snap.RoomID, err)
	}
	q := `
		INSERT INTO rooms (room_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (room_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()
	`
	if _, err := DB.Exec(ctx, q, snap.RoomID, raw); err != nil {
		return fmt.Errorf("upsert room %s: %w", snap.RoomID, err)
	}
	return nil
}

// SetRoomField patches a single top-level field of the stored snapshot
// without rewriting the rest, e.g. sealing the winner.
func SetRoomField(ctx context.Context, roomID, field string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode room %s field %s: %w", roomID, field, err)
	}
	q := `
		UPDATE rooms
		SET state = jsonb_set(state, ARRAY[$2], $3::jsonb, true), updated_at = now()
		WHERE room_id = $1
	`
	if _, err := DB.Exec(ctx, q, roomID, field, raw); err != nil {
		return fmt.Errorf("patch room %s field %s: %w", roomID, field, err)
	}
	return nil
}
