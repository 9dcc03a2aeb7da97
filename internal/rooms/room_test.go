package rooms

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyozai-live/backend/internal/models"
)

func testParticipant(id string, role models.Role) models.Participant {
	return models.Participant{ID: id, Name: "名無し", Role: role, JoinedAt: time.Now()}
}

func testAnnotation(id string, page int) models.Annotation {
	return models.Annotation{
		ID:         id,
		PageNumber: page,
		Type:       models.AnnotationPin,
		Data:       json.RawMessage(`{"x":10,"y":20}`),
		Timestamp:  time.Now(),
	}
}

func TestRoom_Defaults(t *testing.T) {
	room := newRoom("r1", "m1", "i1")
	state := room.State()

	assert.Equal(t, "r1", state.RoomID)
	assert.Equal(t, "m1", state.MaterialID)
	assert.Equal(t, 1, state.CurrentPage)
	assert.True(t, state.SyncEnabled)
	assert.Empty(t, state.Participants)
	assert.Empty(t, state.Annotations)
	assert.False(t, state.CreatedAt.IsZero())
}

func TestRoom_Participants(t *testing.T) {
	room := newRoom("r1", "m1", "i1")

	room.AddParticipant(testParticipant("c1", models.RoleInstructor))
	room.AddParticipant(testParticipant("c2", models.RoleStudent))
	assert.Len(t, room.State().Participants, 2)

	// Re-join with the same connection id replaces, not duplicates.
	room.AddParticipant(testParticipant("c1", models.RoleInstructor))
	assert.Len(t, room.State().Participants, 2)

	assert.True(t, room.RemoveParticipant("c2"))
	assert.False(t, room.RemoveParticipant("c2"), "removing a non-member is a no-op")
	assert.Len(t, room.State().Participants, 1)

	p, ok := room.Participant("c1")
	require.True(t, ok)
	assert.Equal(t, models.RoleInstructor, p.Role)
	_, ok = room.Participant("c2")
	assert.False(t, ok)
}

func TestRoom_PageAndSync(t *testing.T) {
	room := newRoom("r1", "m1", "i1")

	// No bounds validation at the room layer.
	room.SetPage(999)
	assert.Equal(t, 999, room.State().CurrentPage)

	room.ToggleSync(false)
	assert.False(t, room.State().SyncEnabled)
	room.ToggleSync(true)
	assert.True(t, room.State().SyncEnabled)
}

func TestRoom_Annotations(t *testing.T) {
	room := newRoom("r1", "m1", "i1")

	room.AddAnnotation(testAnnotation("a1", 1))
	room.AddAnnotation(testAnnotation("a2", 2))
	room.AddAnnotation(testAnnotation("a3", 1))

	state := room.State()
	require.Len(t, state.Annotations, 3)
	// Insertion order is preserved.
	assert.Equal(t, "a1", state.Annotations[0].ID)
	assert.Equal(t, "a2", state.Annotations[1].ID)
	assert.Equal(t, "a3", state.Annotations[2].ID)

	assert.True(t, room.RemoveAnnotation("a2"))
	assert.False(t, room.RemoveAnnotation("a2"), "removing twice is a no-op")
	state = room.State()
	require.Len(t, state.Annotations, 2)
	assert.Equal(t, "a1", state.Annotations[0].ID)
	assert.Equal(t, "a3", state.Annotations[1].ID)

	room.ClearAnnotations()
	assert.Empty(t, room.State().Annotations)
}

func TestRoom_StateIsSnapshot(t *testing.T) {
	room := newRoom("r1", "m1", "i1")
	room.AddAnnotation(testAnnotation("a1", 1))
	room.AddParticipant(testParticipant("c1", models.RoleStudent))

	state := room.State()
	room.ClearAnnotations()
	room.RemoveParticipant("c1")

	// The earlier snapshot is unaffected by later mutations.
	assert.Len(t, state.Annotations, 1)
	assert.Len(t, state.Participants, 1)
}
