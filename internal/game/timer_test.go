// internal/game/timer_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnTimeoutPassesTurn(t *testing.T) {
	r, ps, _ := setupTestRoom(t)

	require.Eventually(t, func() bool {
		return r.Snapshot().Turn == ps[1].Color
	}, time.Second, 10*time.Millisecond)

	snap := r.Snapshot()
	assert.True(t, hasLog(snap, "Time out for "+string(ps[0].Color)))
	assert.Equal(t, 0, snap.DiceValue)
}

func TestTimeoutDiscardsPendingDice(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	queueRolls(t, r, 6)
	r.HandleRollDice("conn0")
	assert.Equal(t, 6, r.Snapshot().DiceValue)

	require.Eventually(t, func() bool {
		return r.Snapshot().Turn == ps[1].Color
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, r.Snapshot().DiceValue)
}

func TestActionReArmsCountdown(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	r.Mu.Lock()
	r.TurnDuration = 150 * time.Millisecond
	r.armTurnTimer()
	r.Mu.Unlock()

	// Acting just before expiry restarts the clock, so the original deadline
	// must not fire.
	time.Sleep(100 * time.Millisecond)
	queueRolls(t, r, 6)
	r.HandleRollDice("conn0")
	r.HandleMovePiece("conn0", 0)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, ps[0].Color, r.Snapshot().Turn, "re-armed timer keeps the turn alive")
	assert.False(t, hasLog(r.Snapshot(), "Time out for "+string(ps[0].Color)))
}

func TestTimerSyncCarriesTotalTime(t *testing.T) {
	r := NewLudoRoom("room-t")
	r.TurnDuration = 15 * time.Second
	mb := newMockSink()
	mb.wire(r)

	r.Mu.Lock()
	r.GameStarted = true
	r.armTurnTimer()
	r.cancelTurnTimer()
	r.Mu.Unlock()

	syncs := mb.eventsOfType(EventTimerSync)
	require.Len(t, syncs, 1)
	assert.Equal(t, int64(15000), syncs[0].TotalTime)
	assert.Equal(t, int64(15000), syncs[0].TimeLeft)
}
