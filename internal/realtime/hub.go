package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains room_id -> set of subscribed connections and delivers
// outbound events. Joining a room and subscribing to its broadcast
// group are the same action.
//
// Every mutation-plus-broadcast sequence on a room runs under that
// room's session lock (LockRoom), so broadcast order matches mutation
// order within a room, and a join can take its state snapshot and
// subscribe as one atomic step. Rooms never block each other.
//
// The hub also keeps a reverse index from connection id to joined
// rooms, so disconnect cleanup only touches the rooms the connection
// actually joined.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[string]*Client
	byConn map[string]map[string]struct{}
	locks  map[string]*sync.Mutex
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		groups: make(map[string]map[string]*Client),
		byConn: make(map[string]map[string]struct{}),
		locks:  make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// LockRoom acquires the session lock for a room and returns the
// unlock function. The lock is created lazily on first use.
func (h *Hub) LockRoom(roomID string) func() {
	h.mu.Lock()
	l, ok := h.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		h.locks[roomID] = l
	}
	h.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Subscribe adds a connection to a room's broadcast group.
func (h *Hub) Subscribe(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[roomID] == nil {
		h.groups[roomID] = make(map[string]*Client)
	}
	h.groups[roomID][c.ID] = c
	if h.byConn[c.ID] == nil {
		h.byConn[c.ID] = make(map[string]struct{})
	}
	h.byConn[c.ID][roomID] = struct{}{}
	h.logger.Debug("client subscribed",
		zap.String("client_id", c.ID), zap.String("room_id", roomID))
}

// Unsubscribe removes a connection from a room's broadcast group.
func (h *Hub) Unsubscribe(roomID, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if g, ok := h.groups[roomID]; ok {
		delete(g, clientID)
		if len(g) == 0 {
			delete(h.groups, roomID)
		}
	}
	if r, ok := h.byConn[clientID]; ok {
		delete(r, roomID)
		if len(r) == 0 {
			delete(h.byConn, clientID)
		}
	}
}

// JoinedRooms returns the rooms the connection is subscribed to.
func (h *Hub) JoinedRooms(clientID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.byConn[clientID]))
	for roomID := range h.byConn[clientID] {
		ids = append(ids, roomID)
	}
	return ids
}

// SubscriberCount returns the number of connections in a room's group.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[roomID])
}

// Broadcast delivers an event to every connection subscribed to the
// room, including the sender.
func (h *Hub) Broadcast(roomID, event string, payload interface{}) {
	h.broadcast(roomID, "", event, payload)
}

// BroadcastExcept delivers an event to every subscribed connection
// except the one named.
func (h *Hub) BroadcastExcept(roomID, exceptID, event string, payload interface{}) {
	h.broadcast(roomID, exceptID, event, payload)
}

func (h *Hub) broadcast(roomID, exceptID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("marshal broadcast payload",
			zap.String("event", event), zap.Error(err))
		return
	}
	msg := Envelope{Event: event, Data: data}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.groups[roomID]))
	for id, c := range h.groups[roomID] {
		if id == exceptID {
			continue
		}
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// DropRoom discards a room's broadcast group and session lock. Called
// when the registry deletes the room.
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.groups[roomID] {
		if r, ok := h.byConn[id]; ok {
			delete(r, roomID)
			if len(r) == 0 {
				delete(h.byConn, id)
			}
		}
	}
	delete(h.groups, roomID)
	delete(h.locks, roomID)
}
