package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/kyozai-live/backend/internal/models"
	"github.com/kyozai-live/backend/internal/rooms"
)

// PageCounter reports the page count of a converted material. Used for
// the optional bounds check on page changes; nil disables the check.
type PageCounter interface {
	PageCount(materialID string) (int, bool)
}

// AttendanceHook is called when a participant enters or leaves a room.
type AttendanceHook func(roomID string, p models.Participant)

// Gateway is the event-driven boundary of the session engine. It
// resolves the target room, enforces per-event authorization, applies
// mutations through the room's operations and broadcasts the resulting
// deltas to the room's subscriber group.
type Gateway struct {
	registry *rooms.Registry
	hub      *Hub
	pages    PageCounter
	logger   *zap.Logger

	onJoin  AttendanceHook
	onLeave AttendanceHook
}

// NewGateway creates a gateway bound to a registry and hub. pages may
// be nil when no material metadata is available.
func NewGateway(registry *rooms.Registry, hub *Hub, pages PageCounter, logger *zap.Logger) *Gateway {
	return &Gateway{registry: registry, hub: hub, pages: pages, logger: logger}
}

// SetAttendanceHooks registers callbacks for participant join/leave,
// e.g. for the attendance log. Hooks run outside the room's session
// lock and must not call back into the gateway.
func (g *Gateway) SetAttendanceHooks(onJoin, onLeave AttendanceHook) {
	g.onJoin = onJoin
	g.onLeave = onLeave
}

// Dispatch routes one inbound event to its handler. Unknown events are
// ignored; malformed payloads produce a caller-only error.
func (g *Gateway) Dispatch(c *Client, msg Envelope) {
	switch msg.Event {
	case EventRoomJoin:
		dispatch(g, c, msg.Data, g.handleJoin)
	case EventRoomLeave:
		dispatch(g, c, msg.Data, g.handleLeave)
	case EventPageChange:
		dispatch(g, c, msg.Data, g.handlePageChange)
	case EventSyncToggle:
		dispatch(g, c, msg.Data, g.handleSyncToggle)
	case EventAnnotationAdd:
		dispatch(g, c, msg.Data, g.handleAnnotationAdd)
	case EventAnnotationRemove:
		dispatch(g, c, msg.Data, g.handleAnnotationRemove)
	case EventAnnotationClear:
		dispatch(g, c, msg.Data, g.handleAnnotationClear)
	case EventImportantDisplay:
		dispatch(g, c, msg.Data, g.handleImportantDisplay)
	case EventImportantHide:
		dispatch(g, c, msg.Data, g.handleImportantHide)
	default:
		// ignore
	}
}

// payload constrains dispatch to the typed inbound shapes.
type payload[T any] interface {
	*T
	validate() error
}

func dispatch[T any, P payload[T]](g *Gateway, c *Client, data json.RawMessage, handle func(*Client, P)) {
	var v T
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v); err != nil {
			c.sendError("malformed payload")
			return
		}
	}
	p := P(&v)
	if err := p.validate(); err != nil {
		c.sendError(err.Error())
		return
	}
	handle(c, p)
}

func (g *Gateway) handleJoin(c *Client, p *joinPayload) {
	room := g.registry.Get(p.RoomID)
	if room == nil {
		c.sendError("room not found")
		return
	}

	participant := models.Participant{
		ID:       c.ID,
		Name:     p.Name,
		Role:     p.Role,
		JoinedAt: time.Now(),
	}

	// Snapshot and subscription happen as one step under the session
	// lock, so the joiner cannot miss a broadcast at the boundary.
	unlock := g.hub.LockRoom(p.RoomID)
	room.AddParticipant(participant)
	g.hub.Subscribe(p.RoomID, c)
	c.enqueue(EventRoomState, room.State())
	g.hub.BroadcastExcept(p.RoomID, c.ID, EventParticipantJoined, participant)
	unlock()

	if g.onJoin != nil {
		g.onJoin(p.RoomID, participant)
	}
	g.logger.Info("participant joined",
		zap.String("room_id", p.RoomID),
		zap.String("client_id", c.ID),
		zap.String("role", string(participant.Role)))
}

func (g *Gateway) handleLeave(c *Client, p *leavePayload) {
	room := g.registry.Get(p.RoomID)
	if room == nil {
		return
	}
	g.leaveRoom(room, c.ID)
}

// leaveRoom removes the connection from one room and notifies the
// remaining subscribers. Removal and broadcast are atomic per room.
func (g *Gateway) leaveRoom(room *rooms.Room, clientID string) {
	roomID := room.ID()

	unlock := g.hub.LockRoom(roomID)
	participant, member := room.Participant(clientID)
	if member {
		room.RemoveParticipant(clientID)
	}
	g.hub.Unsubscribe(roomID, clientID)
	if member {
		g.hub.Broadcast(roomID, EventParticipantLeft, map[string]string{"id": clientID})
	}
	unlock()

	if member && g.onLeave != nil {
		g.onLeave(roomID, participant)
	}
}

// Disconnect cleans up after an abrupt or explicit connection close.
// Each per-room removal and its broadcast stay atomic within that
// room; no lock spans more than one room.
func (g *Gateway) Disconnect(c *Client) {
	for _, roomID := range g.hub.JoinedRooms(c.ID) {
		room := g.registry.Get(roomID)
		if room == nil {
			g.hub.Unsubscribe(roomID, c.ID)
			continue
		}
		g.leaveRoom(room, c.ID)
	}
	g.logger.Debug("client disconnected", zap.String("client_id", c.ID))
}

// instructorMutation is the shared shape of every instructor-gated
// event: resolve room, verify the caller's role, mutate and rebroadcast
// under the room's session lock. apply returns the outbound event and
// payload, or ok=false to reject without broadcasting.
func (g *Gateway) instructorMutation(c *Client, roomID string, apply func(room *rooms.Room) (event string, payload interface{}, ok bool)) {
	room := g.registry.Get(roomID)
	if room == nil {
		c.sendError("room not found")
		return
	}

	unlock := g.hub.LockRoom(roomID)
	defer unlock()

	p, member := room.Participant(c.ID)
	if !member || p.Role != models.RoleInstructor {
		c.sendError("permission denied")
		return
	}
	event, payload, ok := apply(room)
	if !ok {
		return
	}
	g.hub.Broadcast(roomID, event, payload)
}

func (g *Gateway) handlePageChange(c *Client, p *pageChangePayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		if g.pages != nil {
			if total, known := g.pages.PageCount(room.MaterialID()); known && p.PageNumber > total {
				c.sendError(fmt.Sprintf("page %d out of range (material has %d pages)", p.PageNumber, total))
				return "", nil, false
			}
		}
		room.SetPage(p.PageNumber)
		return EventPageChanged, map[string]int{"page_number": p.PageNumber}, true
	})
}

func (g *Gateway) handleSyncToggle(c *Client, p *syncTogglePayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		room.ToggleSync(p.Enabled)
		return EventSyncToggled, map[string]bool{"enabled": p.Enabled}, true
	})
}

func (g *Gateway) handleAnnotationAdd(c *Client, p *annotationAddPayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		a := models.Annotation{
			ID:         p.Annotation.ID,
			PageNumber: p.Annotation.PageNumber,
			Type:       p.Annotation.Type,
			Data:       p.Annotation.Data,
			Timestamp:  time.Now(),
			Temporary:  p.Annotation.Temporary,
		}
		if a.ID == "" {
			a.ID = ksuid.New().String()
		}
		room.AddAnnotation(a)
		return EventAnnotationAdded, a, true
	})
}

func (g *Gateway) handleAnnotationRemove(c *Client, p *annotationRemovePayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		room.RemoveAnnotation(p.AnnotationID)
		return EventAnnotationRemoved, map[string]string{"id": p.AnnotationID}, true
	})
}

func (g *Gateway) handleAnnotationClear(c *Client, p *annotationClearPayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		room.ClearAnnotations()
		return EventAnnotationCleared, struct{}{}, true
	})
}

func (g *Gateway) handleImportantDisplay(c *Client, p *importantDisplayPayload) {
	// No room state changes; this is a pure ephemeral broadcast.
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		return EventImportantShow, map[string]interface{}{
			"title":  p.Title,
			"points": p.Points,
		}, true
	})
}

func (g *Gateway) handleImportantHide(c *Client, p *importantHidePayload) {
	g.instructorMutation(c, p.RoomID, func(room *rooms.Room) (string, interface{}, bool) {
		return EventImportantHidden, struct{}{}, true
	})
}
