package feedback

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kyozai-live/backend/internal/models"
)

// Repository handles feedback persistence. Records are append-only;
// there is no update or delete path.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a feedback repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a feedback record.
func (r *Repository) Create(ctx context.Context, f *models.Feedback) error {
	const q = `INSERT INTO feedback
		(id, room_id, user_role, user_name,
		 rating_sync_speed, rating_annotation, rating_metadata, rating_ui, rating_overall,
		 comment_good, comment_bad, comment_feature, technical_issues)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		f.RoomID, f.UserRole, f.UserName,
		f.RatingSyncSpeed, f.RatingAnnotation, f.RatingMetadata, f.RatingUI, f.RatingOverall,
		f.CommentGood, f.CommentBad, f.CommentFeature, f.TechnicalIssues).
		Scan(&f.ID, &f.CreatedAt)
}

// List returns all feedback records in submission order, optionally
// filtered by room id.
func (r *Repository) List(ctx context.Context, roomID string) ([]models.Feedback, error) {
	const base = `SELECT id, room_id, user_role, user_name,
		rating_sync_speed, rating_annotation, rating_metadata, rating_ui, rating_overall,
		comment_good, comment_bad, comment_feature, technical_issues, created_at
		FROM feedback`

	q := base + ` ORDER BY created_at`
	var args []interface{}
	if roomID != "" {
		q = base + ` WHERE room_id = $1 ORDER BY created_at`
		args = append(args, roomID)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.RoomID, &f.UserRole, &f.UserName,
			&f.RatingSyncSpeed, &f.RatingAnnotation, &f.RatingMetadata, &f.RatingUI, &f.RatingOverall,
			&f.CommentGood, &f.CommentBad, &f.CommentFeature, &f.TechnicalIssues, &f.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
