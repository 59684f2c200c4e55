package repositories

import (
	"context"
	"database/sql"

	intconfig "sparetime/internal/config"
	"sparetime/internal/domain/models"
)

// QueueRepository owns the per-user pending-review queue. Each mutation is a
// single conditional statement, so concurrent requests for the same user
// cannot lose updates: the storage tier serializes them and RowsAffected says
// whether this call was the one that changed the row.
type QueueRepository struct {
	DB *sql.DB
}

func (r QueueRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Enqueue adds the video if absent. The returned bool is true when this call
// inserted the row; a duplicate enqueue returns (false, nil) — a normal
// outcome, not an error.
func (r QueueRepository) Enqueue(ctx context.Context, userID string, v models.VideoReference) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT IGNORE INTO rating_queue (user_id, video_id, title, channel_title, description)
		VALUES (?, ?, ?, ?, ?)`,
		userID, v.ID, v.Title, v.ChannelTitle, v.Description,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Dequeue removes the video if present. Removing an absent entry returns
// (false, nil); callers must not treat that as fatal during retry.
func (r QueueRepository) Dequeue(ctx context.Context, userID, videoID string) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		DELETE FROM rating_queue WHERE user_id = ? AND video_id = ?`,
		userID, videoID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns the user's queue in enqueue order (video_id as tiebreaker so
// repeated reads are stable).
func (r QueueRepository) List(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT video_id, title, channel_title, COALESCE(description, ''), enqueued_at
		FROM rating_queue
		WHERE user_id = ?
		ORDER BY enqueued_at ASC, video_id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.QueueEntry, 0)
	for rows.Next() {
		e := models.QueueEntry{UserID: userID}
		if err := rows.Scan(&e.Video.ID, &e.Video.Title, &e.Video.ChannelTitle, &e.Video.Description, &e.EnqueuedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
