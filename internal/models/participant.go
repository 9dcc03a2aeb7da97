package models

import "time"

// Role determines write authorization inside a room.
type Role string

const (
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether the role is part of the known vocabulary.
func (r Role) Valid() bool {
	return r == RoleInstructor || r == RoleStudent
}

// DefaultDisplayName is used when a participant joins without a name.
const DefaultDisplayName = "匿名"

// Participant is one connection's membership record in a room.
// The ID is the connection id assigned by the transport, never chosen
// by the client. The role is a claim made at join time; it is not
// independently verified.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
