package game

import "github.com/Gauhar-1/Ludo-game/internal/models"

// HandleMovePiece applies the committed dice value to one of the caller's
// pieces. Illegal requests (out of turn, nothing rolled, overshoot, launch
// without a six) change nothing; the caller just gets no state update. Legal
// moves resolve captures against the ring occupancy table, detect home
// arrival and the win condition, then hand off to the bonus/advance decision.
func (r *LudoRoom) HandleMovePiece(connID string, pieceIndex int) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Winner != "" {
		return
	}
	p := r.playerByConn(connID)
	if p == nil || r.Turn != p.Color || r.DiceValue == 0 {
		return
	}
	if pieceIndex < 0 || pieceIndex >= Pieces {
		return
	}

	dice := r.DiceValue
	current := r.Positions[p.Color][pieceIndex]

	var dest int
	if current == -1 {
		if dice != 6 {
			r.fireEventTo(p, Event{Type: EventError, Message: "need a 6 to leave base"})
			return
		}
		dest = 0
	} else {
		dest = current + dice
		if dest > HomeStep {
			r.fireEventTo(p, Event{Type: EventError, Message: "move overshoots home"})
			return
		}
	}

	bonus := false

	// Vacate the old ring cell, but only if the tag still belongs to this
	// exact piece; a stale table entry must not clobber someone else.
	if current >= 0 && current <= RingEnd {
		cell := ActualCell(p.Color, current)
		if occ := r.PlaceHolders[cell]; occ != nil && occ.Color == p.Color && occ.PieceIndex == pieceIndex {
			r.PlaceHolders[cell] = nil
		}
	}

	if dest <= RingEnd {
		cell := ActualCell(p.Color, dest)
		if occ := r.PlaceHolders[cell]; occ != nil && occ.Color != p.Color && !IsSafeCell(cell) {
			// Capture: the opponent piece goes back to base and must roll a
			// fresh 6 to re-enter.
			r.Positions[occ.Color][occ.PieceIndex] = -1
			r.addLog(string(p.Color)+" captured "+string(occ.Color)+"!", string(p.Color))
			r.record(p.Color, "capture", map[string]interface{}{
				"victim": string(occ.Color), "pieceIndex": occ.PieceIndex, "cell": cell,
			})
			bonus = true
		}
		// Same-color stacking is allowed; the newest piece owns the tag.
		r.PlaceHolders[cell] = &Occupant{Color: p.Color, PieceIndex: pieceIndex}
	}

	r.Positions[p.Color][pieceIndex] = dest
	r.record(p.Color, "move", map[string]interface{}{"pieceIndex": pieceIndex, "step": dest})

	if dest == HomeStep {
		r.addLog(string(p.Color)+" reached Home!", string(p.Color))
		bonus = true
		if r.allHome(p.Color) {
			r.declareWinner(p)
			return
		}
	}

	r.fireEvent(Event{Type: EventUpdatePiece, NewPosition: r.copyPositions(), Logs: r.Logs})

	if dice == 6 || bonus {
		// Bonus turn: the dice clears but the turn stays put.
		r.DiceValue = 0
		r.addLog("Bonus roll for "+string(p.Color), string(p.Color))
		r.armTurnTimer()
		r.fireEvent(Event{Type: EventUpdateTurn, Color: p.Color})
		r.persist()
		return
	}
	r.nextTurn()
}

// allHome reports whether all four pieces of a color sit on the final home
// step. Assumes lock is held.
func (r *LudoRoom) allHome(color models.Color) bool {
	for _, step := range r.Positions[color] {
		if step != HomeStep {
			return false
		}
	}
	return true
}

// declareWinner seals the room: the winner is immutable and no further roll
// or move is accepted. The settlement callback receives the winner's durable
// identity; its delivery is best-effort and never rolls the result back.
// Assumes lock is held.
func (r *LudoRoom) declareWinner(p *models.Player) {
	r.Winner = p.Color
	r.addLog("Victory for "+string(p.Color)+"!", string(p.Color))
	r.cancelTurnTimer()

	r.fireEvent(Event{Type: EventUpdatePiece, NewPosition: r.copyPositions(), Logs: r.Logs})
	r.fireEvent(Event{Type: EventDeclareWinner, Color: p.Color})
	r.record(p.Color, "win", map[string]interface{}{"userId": p.UserID.String()})
	r.persist()

	if r.OnWin != nil {
		r.OnWin(r.ID, p.Color, p.UserID)
	}
}
