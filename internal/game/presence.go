package game

// HandleDisconnect reconciles a dropped socket with the seat that owned it.
// The game freezes rather than auto-losing the absent player: the countdown
// stops, the room broadcasts a pause, and every piece stays where it was.
// Reconnecting through HandleJoin with the same durable identity resumes play
// with a fresh countdown.
func (r *LudoRoom) HandleDisconnect(connID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p := r.playerByConn(connID)
	if p == nil || !p.Online {
		return
	}
	p.Online = false
	p.Conn = nil

	r.cancelTurnTimer()
	r.addLog(string(p.Color)+" disconnected", "system")
	r.record(p.Color, "disconnect", nil)
	r.fireEvent(Event{
		Type:    EventGamePaused,
		UserID:  p.UserID.String(),
		Message: string(p.Color) + " disconnected, game paused",
	})
	r.persist()
}
