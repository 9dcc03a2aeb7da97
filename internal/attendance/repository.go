package attendance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kyozai-live/backend/internal/models"
)

// Repository handles attendance_logs: one row per join/leave interval
// of a connection in a room.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an attendance repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LogJoin inserts a row when a connection joins a room.
func (r *Repository) LogJoin(ctx context.Context, roomID string, p models.Participant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_logs (room_id, connection_id, name, role, joined_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		roomID, p.ID, p.Name, string(p.Role), p.JoinedAt)
	return err
}

// LogLeave closes the most recent open interval for this connection in
// this room.
func (r *Repository) LogLeave(ctx context.Context, roomID, connectionID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attendance_logs a SET left_at = NOW()
		 FROM (SELECT id FROM attendance_logs
		       WHERE room_id = $1 AND connection_id = $2 AND left_at IS NULL
		       ORDER BY joined_at DESC LIMIT 1) AS sub
		 WHERE a.id = sub.id`,
		roomID, connectionID)
	return err
}

// ListByRoom returns all attendance intervals for a room, latest first.
func (r *Repository) ListByRoom(ctx context.Context, roomID string) ([]models.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, room_id, connection_id, name, role, joined_at, left_at
		 FROM attendance_logs WHERE room_id = $1 ORDER BY joined_at DESC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.RoomID, &rec.ConnectionID, &rec.Name, &rec.Role, &rec.JoinedAt, &rec.LeftAt); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
