package rooms

import (
	"sync"
	"time"

	"github.com/kyozai-live/backend/internal/models"
)

// Room owns one live session's mutable state: current page, sync flag,
// participant set and annotation list. It is a pure state container;
// authorization is enforced by the realtime gateway before any mutation
// is invoked. Every operation is atomic with respect to other
// operations on the same room; rooms never block each other.
type Room struct {
	id           string
	materialID   string
	instructorID string
	createdAt    time.Time

	mu           sync.RWMutex
	currentPage  int
	syncEnabled  bool
	participants map[string]models.Participant
	annotations  []models.Annotation
}

func newRoom(id, materialID, instructorID string) *Room {
	return &Room{
		id:           id,
		materialID:   materialID,
		instructorID: instructorID,
		createdAt:    time.Now(),
		currentPage:  1,
		syncEnabled:  true,
		participants: make(map[string]models.Participant),
	}
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// MaterialID returns the material bound to this room.
func (r *Room) MaterialID() string { return r.materialID }

// AddParticipant records a participant, keyed by connection id.
// Re-joining with the same connection id replaces the previous record.
func (r *Room) AddParticipant(p models.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[p.ID] = p
}

// RemoveParticipant deletes the participant for the connection id.
// Removing a non-member is a no-op; the return value reports whether
// the connection was a member.
func (r *Room) RemoveParticipant(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[connectionID]; !ok {
		return false
	}
	delete(r.participants, connectionID)
	return true
}

// Participant returns the membership record for a connection id.
func (r *Room) Participant(connectionID string) (models.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[connectionID]
	return p, ok
}

// SetPage overwrites the current page. The room performs no bounds
// validation; any page-count check is the caller's concern.
func (r *Room) SetPage(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentPage = n
}

// ToggleSync overwrites the sync flag. The flag is advisory state
// broadcast to clients; the server never gates page broadcasts on it.
func (r *Room) ToggleSync(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncEnabled = enabled
}

// AddAnnotation appends to the end of the annotation sequence.
// Insertion order is the only ordering guarantee.
func (r *Room) AddAnnotation(a models.Annotation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations = append(r.annotations, a)
}

// RemoveAnnotation removes the annotation matching id. No-op if absent.
func (r *Room) RemoveAnnotation(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.annotations {
		if a.ID == id {
			r.annotations = append(r.annotations[:i], r.annotations[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAnnotations empties the annotation sequence unconditionally.
func (r *Room) ClearAnnotations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations = nil
}

// State returns a fully-populated snapshot of the room, suitable for
// transmission to a late joiner. The slices are copies; the snapshot
// never aliases the room's internal state.
func (r *Room) State() models.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := make([]models.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		participants = append(participants, p)
	}
	annotations := make([]models.Annotation, len(r.annotations))
	copy(annotations, r.annotations)

	return models.RoomState{
		RoomID:       r.id,
		MaterialID:   r.materialID,
		CurrentPage:  r.currentPage,
		SyncEnabled:  r.syncEnabled,
		Participants: participants,
		Annotations:  annotations,
		CreatedAt:    r.createdAt,
	}
}
