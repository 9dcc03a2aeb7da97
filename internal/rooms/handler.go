package rooms

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kyozai-live/backend/pkg/response"
)

// CreateRequest is the body for POST /api/rooms.
type CreateRequest struct {
	RoomID       string `json:"room_id"`
	MaterialID   string `json:"material_id" binding:"required"`
	InstructorID string `json:"instructor_id"`
}

// Handler handles room management HTTP endpoints.
type Handler struct {
	registry         *Registry
	fallbackMaterial string
	logger           *zap.Logger

	// OnDelete is called after a room is removed, so the realtime
	// layer can drop the room's broadcast group.
	OnDelete func(roomID string)
}

// NewHandler creates a room handler. fallbackMaterial is the material
// bound to rooms created implicitly by the instructor entry point.
func NewHandler(registry *Registry, fallbackMaterial string, logger *zap.Logger) *Handler {
	return &Handler{registry: registry, fallbackMaterial: fallbackMaterial, logger: logger}
}

// Create handles POST /api/rooms. Re-creating an existing room id
// returns the existing room's entry URLs unchanged.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	roomID := req.RoomID
	if roomID == "" {
		roomID = uuid.New().String()[:8]
	}
	instructorID := req.InstructorID
	if instructorID == "" {
		instructorID = uuid.New().String()
	}

	h.registry.Create(roomID, req.MaterialID, instructorID)
	h.logger.Info("room created",
		zap.String("room_id", roomID), zap.String("material_id", req.MaterialID))

	response.Created(c, gin.H{
		"room_id":        roomID,
		"instructor_url": "/instructor/" + roomID,
		"student_url":    "/student/" + roomID,
	})
}

// Get handles GET /api/rooms/:id.
func (h *Handler) Get(c *gin.Context) {
	room := h.registry.Get(c.Param("id"))
	if room == nil {
		response.NotFound(c, "room not found")
		return
	}
	response.OK(c, room.State())
}

// Delete handles DELETE /api/rooms/:id (admin). Deleting an unknown
// room is a no-op success.
func (h *Handler) Delete(c *gin.Context) {
	roomID := c.Param("id")
	h.registry.Delete(roomID)
	if h.OnDelete != nil {
		h.OnDelete(roomID)
	}
	h.logger.Info("room deleted", zap.String("room_id", roomID))
	response.OK(c, gin.H{"room_id": roomID})
}

// List handles GET /api/rooms.
func (h *Handler) List(c *gin.Context) {
	response.OK(c, gin.H{"rooms": h.registry.List()})
}

// InstructorEntry handles GET /instructor/:id. Unknown rooms are
// created implicitly with the fallback material. This is a demo
// convenience of the HTTP layer only; the registry's create contract
// stays explicit.
func (h *Handler) InstructorEntry(c *gin.Context) {
	roomID := c.Param("id")
	room := h.registry.Get(roomID)
	if room == nil {
		room = h.registry.Create(roomID, h.fallbackMaterial, "default_instructor")
		h.logger.Info("room created implicitly for instructor entry",
			zap.String("room_id", roomID), zap.String("material_id", h.fallbackMaterial))
	}
	response.OK(c, gin.H{
		"room_id":     roomID,
		"material_id": room.MaterialID(),
		"role":        "instructor",
	})
}

// StudentEntry handles GET /student/:id. Students never create rooms;
// an unknown room id is a not-found error.
func (h *Handler) StudentEntry(c *gin.Context) {
	roomID := c.Param("id")
	room := h.registry.Get(roomID)
	if room == nil {
		response.NotFound(c, "room not found; ask the instructor for the room URL")
		return
	}
	response.OK(c, gin.H{
		"room_id":     roomID,
		"material_id": room.MaterialID(),
		"role":        "student",
	})
}
