package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one join/leave interval of a connection in a room.
// LeftAt is nil while the connection is still present.
type AttendanceRecord struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       string     `json:"room_id"`
	ConnectionID string     `json:"connection_id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	JoinedAt     time.Time  `json:"joined_at"`
	LeftAt       *time.Time `json:"left_at,omitempty"`
}
