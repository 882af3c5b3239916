package game

import "sync"

// RoomStore owns the in-memory registry of live rooms, keyed by room id. All
// other components reach room state only through the store and the room's own
// methods; the raw map is never exposed.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*LudoRoom
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*LudoRoom),
	}
}

// GetRoom returns the live room for an id, if any.
func (s *RoomStore) GetRoom(id string) (*LudoRoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, exists := s.rooms[id]
	return r, exists
}

// GetOrCreate returns the live room for an id, constructing an empty one on
// first join. The second return reports whether the room was just created, so
// the caller can wire callbacks or rehydrate from the durable store exactly
// once.
func (s *RoomStore) GetOrCreate(id string) (*LudoRoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, exists := s.rooms[id]; exists {
		return r, false
	}
	r := NewLudoRoom(id)
	s.rooms[id] = r
	return r, true
}

// Put registers a room rebuilt from a durable snapshot, unless a live one
// appeared in the meantime, in which case the live one wins.
func (s *RoomStore) Put(r *LudoRoom) *LudoRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, exists := s.rooms[r.ID]; exists {
		return existing
	}
	s.rooms[r.ID] = r
	return r
}

// DeleteRoom drops a room from the registry. The durable row, if any, stays
// behind for reconnect support.
func (s *RoomStore) DeleteRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}
