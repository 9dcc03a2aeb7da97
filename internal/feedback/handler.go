package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kyozai-live/backend/internal/models"
	"github.com/kyozai-live/backend/pkg/response"
)

// SubmitRequest is the body for POST /api/feedback. Matches the
// questionnaire shape the frontend submits.
type SubmitRequest struct {
	RoomID   string `json:"room_id"`
	Role     string `json:"role"`
	UserName string `json:"user_name"`
	Ratings  struct {
		SyncSpeed         int `json:"sync_speed"`
		AnnotationClarity int `json:"annotation_clarity"`
		MetadataQuality   int `json:"metadata_quality"`
		UIUsability       int `json:"ui_usability"`
		Overall           int `json:"overall"`
	} `json:"ratings"`
	Comments struct {
		GoodPoints      string `json:"good_points"`
		Improvements    string `json:"improvements"`
		FeatureRequests string `json:"feature_requests"`
	} `json:"comments"`
	TechnicalIssues []string `json:"technical_issues"`
}

// Handler handles feedback HTTP endpoints.
type Handler struct {
	repo    *Repository
	limiter *Limiter
	logger  *zap.Logger
}

// NewHandler creates a feedback handler. limiter may be nil.
func NewHandler(repo *Repository, limiter *Limiter, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, limiter: limiter, logger: logger}
}

// Submit handles POST /api/feedback.
func (h *Handler) Submit(c *gin.Context) {
	if !h.limiter.Allow(c.Request.Context(), c.ClientIP()) {
		response.Fail(c, http.StatusTooManyRequests, "too many submissions, try again later")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	f := models.Feedback{
		RoomID:           req.RoomID,
		UserRole:         defaultStr(req.Role, "student"),
		UserName:         defaultStr(req.UserName, models.DefaultDisplayName),
		RatingSyncSpeed:  defaultRating(req.Ratings.SyncSpeed),
		RatingAnnotation: defaultRating(req.Ratings.AnnotationClarity),
		RatingMetadata:   defaultRating(req.Ratings.MetadataQuality),
		RatingUI:         defaultRating(req.Ratings.UIUsability),
		RatingOverall:    defaultRating(req.Ratings.Overall),
		CommentGood:      req.Comments.GoodPoints,
		CommentBad:       req.Comments.Improvements,
		CommentFeature:   req.Comments.FeatureRequests,
		TechnicalIssues:  req.TechnicalIssues,
	}
	if f.TechnicalIssues == nil {
		f.TechnicalIssues = []string{}
	}
	if err := h.repo.Create(c.Request.Context(), &f); err != nil {
		h.logger.Error("create feedback", zap.Error(err))
		response.Internal(c, "failed to store feedback")
		return
	}
	response.Created(c, gin.H{"id": f.ID})
}

// List handles GET /api/feedback (admin). Optional ?room_id= filter.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Query("room_id"))
	if err != nil {
		h.logger.Error("list feedback", zap.Error(err))
		response.Internal(c, "failed to load feedback")
		return
	}
	if list == nil {
		list = []models.Feedback{}
	}
	response.OK(c, list)
}

// Statistics handles GET /api/feedback/statistics and
// GET /api/feedback/analytics (same aggregate).
func (h *Handler) Statistics(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), "")
	if err != nil {
		h.logger.Error("load feedback for statistics", zap.Error(err))
		response.Internal(c, "failed to load feedback")
		return
	}
	response.OK(c, Statistics(list))
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// defaultRating maps an omitted rating to the neutral midpoint.
func defaultRating(v int) int {
	if v < 1 || v > 5 {
		return 3
	}
	return v
}
