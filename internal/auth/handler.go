package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kyozai-live/backend/pkg/response"
	"github.com/kyozai-live/backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Handler handles the admin login endpoint. Participant identity on
// the websocket is a bare role claim and never goes through here; this
// guards only the admin surface (feedback listing, attendance).
type Handler struct {
	jwt          *JWTService
	passwordHash string
	logger       *zap.Logger
}

// NewHandler creates an auth handler. passwordHash is the bcrypt hash
// of the admin password; empty disables admin login entirely.
func NewHandler(jwt *JWTService, passwordHash string, logger *zap.Logger) *Handler {
	return &Handler{jwt: jwt, passwordHash: passwordHash, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	if h.passwordHash == "" {
		response.ServiceUnavailable(c, "admin login is not configured")
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "password required")
		return
	}
	if !utils.CheckPassword(req.Password, h.passwordHash) {
		h.logger.Warn("admin login rejected", zap.String("client_ip", c.ClientIP()))
		response.Unauthorized(c, "invalid credentials")
		return
	}
	token, err := h.jwt.Generate("admin", "admin")
	if err != nil {
		response.Internal(c, "failed to issue token")
		return
	}
	response.OK(c, gin.H{"token": token})
}
