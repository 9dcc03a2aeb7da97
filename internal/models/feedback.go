package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one submitted session questionnaire. Ratings are 1-5.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	RoomID    string    `json:"room_id"`
	UserRole  string    `json:"user_role"`
	UserName  string    `json:"user_name"`

	RatingSyncSpeed  int `json:"rating_sync_speed"`
	RatingAnnotation int `json:"rating_annotation"`
	RatingMetadata   int `json:"rating_metadata"`
	RatingUI         int `json:"rating_ui"`
	RatingOverall    int `json:"rating_overall"`

	CommentGood    string `json:"comment_good"`
	CommentBad     string `json:"comment_bad"`
	CommentFeature string `json:"comment_feature"`

	TechnicalIssues []string  `json:"technical_issues"`
	CreatedAt       time.Time `json:"created_at"`
}
