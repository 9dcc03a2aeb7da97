package models

import "time"

// RoomState is the canonical snapshot of a room, sent to a client on
// join and returned by the room query endpoints. Clients rely on this
// exact shape; field names must not change.
type RoomState struct {
	RoomID       string        `json:"room_id"`
	MaterialID   string        `json:"material_id"`
	CurrentPage  int           `json:"current_page"`
	SyncEnabled  bool          `json:"sync_enabled"`
	Participants []Participant `json:"participants"`
	Annotations  []Annotation  `json:"annotations"`
	CreatedAt    time.Time     `json:"created_at"`
}
