package rooms

import (
	"errors"
	"sync"

	"github.com/kyozai-live/backend/internal/models"
)

// ErrRoomNotFound indicates the referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// Registry creates, looks up, enumerates and destroys rooms. It is the
// only authority that constructs a Room. The registry performs no
// authorization; it is storage plus identity management. Construct one
// at startup and inject it into the gateway and HTTP handlers.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create returns the room for roomID, creating it if absent. Creation
// is idempotent: if the room already exists it is returned unchanged,
// keeping the first caller's material and instructor. The
// check-then-insert is atomic, so concurrent creates for the same id
// resolve to a single room.
func (reg *Registry) Create(roomID, materialID, instructorID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[roomID]; ok {
		return room
	}
	room := newRoom(roomID, materialID, instructorID)
	reg.rooms[roomID] = room
	return room
}

// Get returns the room for roomID, or nil if absent. Pure lookup.
func (reg *Registry) Get(roomID string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[roomID]
}

// Delete removes the room if present; no-op if absent.
func (reg *Registry) Delete(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

// List returns the full state snapshot of every live room.
func (reg *Registry) List() []models.RoomState {
	reg.mu.RLock()
	live := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		live = append(live, room)
	}
	reg.mu.RUnlock()

	states := make([]models.RoomState, 0, len(live))
	for _, room := range live {
		states = append(states, room.State())
	}
	return states
}
