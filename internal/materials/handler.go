package materials

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyozai-live/backend/pkg/response"
)

// Presigner produces a time-limited download URL for an object key.
// Nil when no object storage is configured; page images are then
// served from the local static directory instead.
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// Handler handles material HTTP endpoints.
type Handler struct {
	svc     *Service
	presign Presigner
}

// NewHandler creates a materials handler. presign may be nil.
func NewHandler(svc *Service, presign Presigner) *Handler {
	return &Handler{svc: svc, presign: presign}
}

// List handles GET /api/materials.
func (h *Handler) List(c *gin.Context) {
	manifest, err := h.svc.Manifest()
	if err != nil {
		response.Internal(c, "failed to load manifest")
		return
	}
	response.OK(c, manifest)
}

// Get handles GET /api/materials/:id.
func (h *Handler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrMaterialNotFound) {
		response.NotFound(c, "material not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load material")
		return
	}
	response.OK(c, m)
}

// PageURL handles GET /api/materials/:id/pages/:page/url. With object
// storage configured it returns a presigned URL; otherwise the local
// static path from the metadata descriptor.
func (h *Handler) PageURL(c *gin.Context) {
	materialID := c.Param("id")
	pageNumber, err := strconv.Atoi(c.Param("page"))
	if err != nil || pageNumber < 1 {
		response.BadRequest(c, "invalid page number")
		return
	}

	m, err := h.svc.Get(materialID)
	if errors.Is(err, ErrMaterialNotFound) {
		response.NotFound(c, "material not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load material")
		return
	}
	if pageNumber > m.TotalPages || pageNumber > len(m.Pages) {
		response.NotFound(c, fmt.Sprintf("material has %d pages", m.TotalPages))
		return
	}
	page := m.Pages[pageNumber-1]

	if h.presign == nil {
		response.OK(c, gin.H{"url": page.ImageURL})
		return
	}
	key := fmt.Sprintf("materials/%s/pages/%s.jpg", materialID, page.PageID)
	url, err := h.presign.PresignGet(c.Request.Context(), key)
	if err != nil {
		response.Internal(c, "failed to presign page url")
		return
	}
	response.OK(c, gin.H{"url": url})
}
