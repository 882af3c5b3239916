package game

import "time"

// armTurnTimer starts (or restarts) the single countdown slot for the room
// and tells clients to resync their rendered timer. Any previously scheduled
// expiry or pending auto-pass is invalidated by the sequence bump. Assumes
// lock is held.
func (r *LudoRoom) armTurnTimer() {
	r.turnSeq++
	seq := r.turnSeq

	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	if r.passTimer != nil {
		r.passTimer.Stop()
		r.passTimer = nil
	}

	total := r.TurnDuration.Milliseconds()
	r.fireEvent(Event{Type: EventTimerSync, TimeLeft: total, TotalTime: total})

	r.turnTimer = time.AfterFunc(r.TurnDuration, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		// Level-triggered: re-read current state, ignore if the room moved on.
		if r.turnSeq != seq || r.Winner != "" || r.Turn == "" {
			return
		}
		r.addLog("Time out for "+string(r.Turn), string(r.Turn))
		r.record(r.Turn, "timeout", nil)
		r.nextTurn()
	})
}

// cancelTurnTimer stops the countdown and invalidates any in-flight expiry.
// Assumes lock is held.
func (r *LudoRoom) cancelTurnTimer() {
	r.turnSeq++
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	if r.passTimer != nil {
		r.passTimer.Stop()
		r.passTimer = nil
	}
}

// schedulePass forces the turn to advance after a short delay, used for
// triple-six revocation and for rolls with no legal move. The delayed hop is
// guarded by the same sequence as the countdown so that a disconnect or
// timeout in the window wins cleanly. Assumes lock is held.
func (r *LudoRoom) schedulePass(delay time.Duration) {
	seq := r.turnSeq
	if r.passTimer != nil {
		r.passTimer.Stop()
	}
	r.passTimer = time.AfterFunc(delay, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.turnSeq != seq || r.Winner != "" {
			return
		}
		r.nextTurn()
	})
}
