package realtime

import (
	"encoding/json"
	"errors"

	"github.com/kyozai-live/backend/internal/models"
)

// Inbound event names.
const (
	EventRoomJoin         = "room:join"
	EventRoomLeave        = "room:leave"
	EventPageChange       = "page:change"
	EventSyncToggle       = "sync:toggle"
	EventAnnotationAdd    = "annotation:add"
	EventAnnotationRemove = "annotation:remove"
	EventAnnotationClear  = "annotation:clear"
	EventImportantDisplay = "important:display"
	EventImportantHide    = "important:hide"
)

// Outbound event names.
const (
	EventConnected         = "connected"
	EventRoomState         = "room:state"
	EventParticipantJoined = "participant:joined"
	EventParticipantLeft   = "participant:left"
	EventPageChanged       = "page:changed"
	EventSyncToggled       = "sync:toggled"
	EventAnnotationAdded   = "annotation:added"
	EventAnnotationRemoved = "annotation:removed"
	EventAnnotationCleared = "annotation:cleared"
	EventImportantShow     = "important:show"
	EventImportantHidden   = "important:hide"
	EventError             = "error"
)

// Envelope is the websocket message frame: a named event plus its
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// errorPayload is sent to the offending caller only, never broadcast.
type errorPayload struct {
	Message string `json:"message"`
}

// Each inbound event has one explicit payload shape, validated at the
// gateway boundary before any room method runs.

type joinPayload struct {
	RoomID string      `json:"room_id"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
}

func (p *joinPayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	if p.Role == "" {
		p.Role = models.RoleStudent
	}
	if !p.Role.Valid() {
		return errors.New("role must be instructor or student")
	}
	if p.Name == "" {
		p.Name = models.DefaultDisplayName
	}
	return nil
}

type leavePayload struct {
	RoomID string `json:"room_id"`
}

func (p *leavePayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	return nil
}

type pageChangePayload struct {
	RoomID     string `json:"room_id"`
	PageNumber int    `json:"page_number"`
}

func (p *pageChangePayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	if p.PageNumber < 1 {
		return errors.New("page_number must be positive")
	}
	return nil
}

type syncTogglePayload struct {
	RoomID  string `json:"room_id"`
	Enabled bool   `json:"enabled"`
}

func (p *syncTogglePayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	return nil
}

// annotationInput is the client-supplied part of an annotation. The id
// and timestamp are server-assigned when absent.
type annotationInput struct {
	ID         string                `json:"id"`
	PageNumber int                   `json:"page_number"`
	Type       models.AnnotationType `json:"type"`
	Data       json.RawMessage       `json:"data"`
	Temporary  bool                  `json:"temporary"`
}

type annotationAddPayload struct {
	RoomID     string          `json:"room_id"`
	Annotation annotationInput `json:"annotation"`
}

func (p *annotationAddPayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	if p.Annotation.PageNumber < 1 {
		return errors.New("annotation page_number must be positive")
	}
	if !p.Annotation.Type.Valid() {
		return errors.New("unknown annotation type")
	}
	return nil
}

type annotationRemovePayload struct {
	RoomID       string `json:"room_id"`
	AnnotationID string `json:"annotation_id"`
}

func (p *annotationRemovePayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	if p.AnnotationID == "" {
		return errors.New("annotation_id is required")
	}
	return nil
}

type annotationClearPayload struct {
	RoomID string `json:"room_id"`
}

func (p *annotationClearPayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	return nil
}

type importantDisplayPayload struct {
	RoomID string   `json:"room_id"`
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

func (p *importantDisplayPayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	if p.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type importantHidePayload struct {
	RoomID string `json:"room_id"`
}

func (p *importantHidePayload) validate() error {
	if p.RoomID == "" {
		return errors.New("room_id is required")
	}
	return nil
}
