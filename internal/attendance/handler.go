package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/kyozai-live/backend/internal/models"
	"github.com/kyozai-live/backend/pkg/response"
)

// Handler handles GET /api/rooms/:id/attendance (admin).
type Handler struct {
	repo *Repository
}

// NewHandler creates an attendance handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListByRoom returns the attendance log for one room.
func (h *Handler) ListByRoom(c *gin.Context) {
	list, err := h.repo.ListByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Internal(c, "failed to list attendance")
		return
	}
	if list == nil {
		list = []models.AttendanceRecord{}
	}
	response.OK(c, gin.H{"attendance": list})
}
