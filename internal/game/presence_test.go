// internal/game/presence_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisconnectPausesGame(t *testing.T) {
	r, ps, mb := setupTestRoom(t)

	r.HandleDisconnect("conn0")

	snap := r.Snapshot()
	assert.False(t, players(r)[0].Online)
	assert.True(t, hasLog(snap, string(ps[0].Color)+" disconnected"))

	paused := mb.eventsOfType(EventGamePaused)
	require.Len(t, paused, 1)
	assert.Equal(t, ps[0].UserID.String(), paused[0].UserID)

	// Frozen countdown: the absent player's turn must not time out.
	time.Sleep(r.TurnDuration + 50*time.Millisecond)
	snap = r.Snapshot()
	assert.Equal(t, ps[0].Color, snap.Turn)
	assert.False(t, hasLog(snap, "Time out for "+string(ps[0].Color)))
}

func TestReconnectResumesCountdown(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	r.HandleDisconnect("conn0")

	require.NoError(t, r.HandleJoin(nil, "conn0b", ps[0].UserID, "alice"))
	assert.True(t, players(r)[0].Online)

	// Fresh countdown after the resume.
	require.Eventually(t, func() bool {
		return r.Snapshot().Turn == ps[1].Color
	}, time.Second, 10*time.Millisecond)
}

func TestDisconnectUnknownConnNoop(t *testing.T) {
	r, _, mb := setupTestRoom(t)
	r.HandleDisconnect("nope")
	assert.Empty(t, mb.eventsOfType(EventGamePaused))
}

func TestEmptyReflectsLiveConnections(t *testing.T) {
	r, _, _ := setupTestRoom(t)
	assert.False(t, r.Empty())

	r.HandleDisconnect("conn0")
	assert.False(t, r.Empty())

	r.HandleDisconnect("conn1")
	assert.True(t, r.Empty())
}
