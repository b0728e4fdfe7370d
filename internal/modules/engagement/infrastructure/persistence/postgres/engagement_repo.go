package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/domain"
)

// PgEngagementRepository persists plays, downloads and favorites.
type PgEngagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) *PgEngagementRepository {
	return &PgEngagementRepository{db: db}
}

// RecordPlay bumps the track's play counter and appends the history row
// in one transaction.
func (r *PgEngagementRepository) RecordPlay(ctx context.Context, trackID uuid.UUID, userID *uuid.UUID, clientIP string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE audio_tracks SET play_count = play_count + 1 WHERE id = $1`, trackID)
	if err != nil {
		return fmt.Errorf("failed to increment play count: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrItemNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO play_history (track_id, user_id, client_ip) VALUES ($1, $2, $3)`,
		trackID, userID, nullableIP(clientIP))
	if err != nil {
		return fmt.Errorf("failed to record play event: %w", err)
	}

	return tx.Commit()
}

// RecordView bumps the video's view counter
func (r *PgEngagementRepository) RecordView(ctx context.Context, videoID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// RecordDownload bumps the download counter on the audio or video row
// and appends the download log row in one transaction.
func (r *PgEngagementRepository) RecordDownload(ctx context.Context, itemID uuid.UUID, itemType domain.ItemType, userID *uuid.UUID, clientIP string) error {
	var counterQuery string
	switch itemType {
	case domain.ItemAudio:
		counterQuery = `UPDATE audio_tracks SET download_count = download_count + 1 WHERE id = $1`
	case domain.ItemVideo:
		counterQuery = `UPDATE videos SET download_count = download_count + 1 WHERE id = $1`
	default:
		return domain.ErrInvalidItemType
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, counterQuery, itemID)
	if err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrItemNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO downloads (item_id, item_type, user_id, client_ip) VALUES ($1, $2, $3, $4)`,
		itemID, itemType, userID, nullableIP(clientIP))
	if err != nil {
		return fmt.Errorf("failed to record download event: %w", err)
	}

	return tx.Commit()
}

// AddFavorite is idempotent at the storage level; a conflict on the
// primary key reports ErrAlreadyFavorited to the caller.
func (r *PgEngagementRepository) AddFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType domain.ItemType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, item_id, item_type) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		userID, itemID, itemType)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAlreadyFavorited
	}
	return nil
}

func (r *PgEngagementRepository) RemoveFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType domain.ItemType) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND item_id = $2 AND item_type = $3`,
		userID, itemID, itemType)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns the user's saved items, newest first, with the
// item title and artist stage name joined in where the item still exists.
func (r *PgEngagementRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	query := `
		SELECT f.user_id, f.item_id, f.item_type, f.created_at,
		       COALESCE(t.title, v.title) AS title,
		       a.stage_name
		FROM favorites f
		LEFT JOIN audio_tracks t ON f.item_type = 'audio' AND t.id = f.item_id
		LEFT JOIN videos v ON f.item_type = 'video' AND v.id = f.item_id
		LEFT JOIN artists a ON a.user_id = COALESCE(t.artist_id, v.artist_id)
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	favorites := []domain.Favorite{}
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// PurgeHistoryOlderThan trims the play history log and returns the number
// of rows removed. Counters are unaffected.
func (r *PgEngagementRepository) PurgeHistoryOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM play_history WHERE played_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge play history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func nullableIP(ip string) *string {
	if ip == "" {
		return nil
	}
	return &ip
}
