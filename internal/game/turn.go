package game

import (
	"strconv"

	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// HandleRollDice commits a server-generated dice value for the caller's turn.
// A roll is accepted only when the game is running, the caller owns the turn,
// and no roll is pending. Rolling a third consecutive six revokes the whole
// turn: no move happens and the turn passes after a short delay.
func (r *LudoRoom) HandleRollDice(connID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.GameStarted || r.Winner != "" {
		return
	}
	p := r.playerByConn(connID)
	if p == nil || r.Turn != p.Color || r.DiceValue != 0 || r.SixCount >= 3 {
		return
	}

	value := r.RollFn()
	if value == 6 {
		r.SixCount++
	} else {
		r.SixCount = 0
	}

	if r.SixCount == 3 {
		r.addLog("Triple 6! Turn Revoked", string(p.Color))
		r.record(p.Color, "roll-revoked", map[string]interface{}{"value": 6})
		r.fireEvent(Event{Type: EventDiceRolled, Color: p.Color, Value: 6, Logs: r.Logs})
		r.schedulePass(r.RevokeDelay)
		r.persist()
		return
	}

	r.DiceValue = value
	r.addLog(string(p.Color)+" rolled "+strconv.Itoa(value), string(p.Color))
	r.record(p.Color, "roll", map[string]interface{}{"value": value})
	r.fireEvent(Event{Type: EventDiceRolled, Color: p.Color, Value: value, Logs: r.Logs})

	if !r.canMove(p.Color, value) {
		r.addLog("No valid moves for "+string(p.Color), string(p.Color))
		r.schedulePass(r.AutoPassDelay)
	} else {
		// Fresh countdown for the piece choice.
		r.armTurnTimer()
	}
	r.persist()
}

// canMove reports whether any piece of the color has a legal move with the
// given dice value: base pieces need exactly 6 to launch, board pieces must
// not overshoot the final home step. Assumes lock is held.
func (r *LudoRoom) canMove(color models.Color, value int) bool {
	for _, step := range r.Positions[color] {
		if step == -1 {
			if value == 6 {
				return true
			}
			continue
		}
		if step+value <= HomeStep {
			return true
		}
	}
	return false
}

// nextTurn hands the turn to the next seated color in join order, clearing
// the dice and six counters, re-arming the countdown and announcing the new
// turn with a refreshed snapshot. Assumes lock is held.
func (r *LudoRoom) nextTurn() {
	if r.Winner != "" || !r.GameStarted || len(r.Players) == 0 {
		return
	}
	cur := 0
	for i, p := range r.Players {
		if p.Color == r.Turn {
			cur = i
			break
		}
	}
	next := r.Players[(cur+1)%len(r.Players)].Color

	r.Turn = next
	r.DiceValue = 0
	r.SixCount = 0
	r.armTurnTimer()

	r.fireEvent(Event{Type: EventUpdateTurn, Color: next})
	r.broadcastRoomData()
	r.persist()
}
