// internal/game/turn_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollOutOfTurnIgnored(t *testing.T) {
	r, _, mb := setupTestRoom(t)
	queueRolls(t, r) // any roll would fail the test

	r.HandleRollDice("conn1") // second seat, not its turn
	snap := r.Snapshot()
	assert.Equal(t, 0, snap.DiceValue)
	assert.Empty(t, mb.eventsOfType(EventDiceRolled))
}

func TestRollCommitsValueAndLogs(t *testing.T) {
	r, ps, mb := setupTestRoom(t)
	queueRolls(t, r, 6)

	r.HandleRollDice("conn0")
	snap := r.Snapshot()
	assert.Equal(t, 6, snap.DiceValue)
	assert.True(t, hasLog(snap, string(ps[0].Color)+" rolled 6"))

	rolled := mb.eventsOfType(EventDiceRolled)
	require.Len(t, rolled, 1)
	assert.Equal(t, ps[0].Color, rolled[0].Color)
	assert.Equal(t, 6, rolled[0].Value)
	assert.NotEmpty(t, rolled[0].Logs)
}

func TestRollIgnoredWhilePendingDice(t *testing.T) {
	r, _, mb := setupTestRoom(t)
	queueRolls(t, r, 6) // a second pull from the queue fails the test

	r.HandleRollDice("conn0")
	r.HandleRollDice("conn0")

	assert.Equal(t, 6, r.Snapshot().DiceValue)
	assert.Len(t, mb.eventsOfType(EventDiceRolled), 1)
}

func TestNoValidMovesAutoPasses(t *testing.T) {
	r, ps, _ := setupTestRoom(t)
	queueRolls(t, r, 3) // everything in base, 3 cannot launch

	r.HandleRollDice("conn0")
	snap := r.Snapshot()
	assert.True(t, hasLog(snap, "No valid moves for "+string(ps[0].Color)))
	assert.Equal(t, ps[0].Color, snap.Turn, "turn holds until the pass delay")

	require.Eventually(t, func() bool {
		return r.Snapshot().Turn == ps[1].Color
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, r.Snapshot().DiceValue)
}

func TestTripleSixRevokesTurn(t *testing.T) {
	r, ps, mb := setupTestRoom(t)
	queueRolls(t, r, 6, 6, 6)

	// First six launches a piece, second six advances it; each grants a
	// bonus roll that keeps the turn.
	r.HandleRollDice("conn0")
	r.HandleMovePiece("conn0", 0)
	r.HandleRollDice("conn0")
	r.HandleMovePiece("conn0", 1)

	// Third consecutive six: no move, turn revoked.
	r.HandleRollDice("conn0")
	snap := r.Snapshot()
	assert.True(t, hasLog(snap, "Triple 6! Turn Revoked"))
	assert.Equal(t, 0, snap.DiceValue, "revoked roll never becomes movable")

	// The revocation window accepts no further rolls.
	r.HandleRollDice("conn0")
	assert.Equal(t, 0, r.Snapshot().DiceValue)

	require.Eventually(t, func() bool {
		return r.Snapshot().Turn == ps[1].Color
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, r.Snapshot().SixCount)

	rolled := mb.eventsOfType(EventDiceRolled)
	require.NotEmpty(t, rolled)
	assert.Equal(t, 6, rolled[len(rolled)-1].Value)
}

func TestTurnRotationAfterPlainMove(t *testing.T) {
	r, ps, _ := setupTestRoom(t)

	// Put a piece on the ring so a non-six has a legal move.
	r.Mu.Lock()
	r.Positions[ps[0].Color][0] = 5
	r.PlaceHolders[ActualCell(ps[0].Color, 5)] = &Occupant{Color: ps[0].Color, PieceIndex: 0}
	r.Mu.Unlock()
	queueRolls(t, r, 3)

	r.HandleRollDice("conn0")
	r.HandleMovePiece("conn0", 0)

	snap := r.Snapshot()
	assert.Equal(t, ps[1].Color, snap.Turn)
	assert.Equal(t, 0, snap.DiceValue)
	assert.Equal(t, 8, snap.Positions[ps[0].Color][0])
}

func TestRollAfterWinnerIgnored(t *testing.T) {
	r, ps, mb := setupTestRoom(t)
	r.Mu.Lock()
	r.Winner = ps[0].Color
	r.Mu.Unlock()
	mb.clear()

	r.HandleRollDice("conn0")
	assert.Empty(t, mb.eventsOfType(EventDiceRolled))
}
