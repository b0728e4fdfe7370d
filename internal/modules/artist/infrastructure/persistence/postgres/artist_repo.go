package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/domain"
	catalogDomain "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

// PgArtistRepository serves the public artist directory from the users
// and artists tables joined with content counts.
type PgArtistRepository struct {
	db *sqlx.DB
}

func NewArtistRepository(db *sqlx.DB) *PgArtistRepository {
	return &PgArtistRepository{db: db}
}

// List returns verified artists ordered by published track count.
func (r *PgArtistRepository) List(ctx context.Context, limit int) ([]domain.ArtistSummary, error) {
	query := `
		SELECT u.id AS user_id, u.full_name, a.stage_name, u.created_at AS joined_at,
		       (SELECT COUNT(*) FROM audio_tracks t WHERE t.artist_id = u.id AND t.visibility = 'public') AS track_count,
		       (SELECT COUNT(*) FROM videos v WHERE v.artist_id = u.id AND v.visibility = 'public') AS video_count,
		       (SELECT COUNT(*) FROM albums al WHERE al.artist_id = u.id) AS album_count
		FROM users u
		JOIN artists a ON a.user_id = u.id
		WHERE u.is_verified = true
		ORDER BY track_count DESC, a.stage_name ASC
		LIMIT $1`

	artists := []domain.ArtistSummary{}
	if err := r.db.SelectContext(ctx, &artists, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

// GetProfile returns one artist's public page header with lifetime totals.
// Recent content is fetched separately by the service.
func (r *PgArtistRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ArtistProfile, error) {
	query := `
		SELECT u.id AS user_id, u.full_name, a.stage_name, a.years_active, a.website_url,
		       a.facebook_url, a.twitter_url, a.instagram_url, a.youtube_url, u.created_at AS joined_at,
		       COALESCE((SELECT SUM(t.play_count) FROM audio_tracks t WHERE t.artist_id = u.id), 0) AS total_plays,
		       COALESCE((SELECT SUM(t.download_count) FROM audio_tracks t WHERE t.artist_id = u.id), 0) AS total_downloads
		FROM users u
		JOIN artists a ON a.user_id = u.id
		WHERE u.id = $1`

	var profile domain.ArtistProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to get artist profile: %w", err)
	}
	return &profile, nil
}

// RecentTracks returns the artist's newest public tracks.
func (r *PgArtistRepository) RecentTracks(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.AudioTrack, error) {
	query := `
		SELECT t.*, u.full_name AS artist_name, a.stage_name
		FROM audio_tracks t
		JOIN users u ON u.id = t.artist_id
		JOIN artists a ON a.user_id = t.artist_id
		WHERE t.artist_id = $1 AND t.visibility = 'public'
		ORDER BY t.uploaded_at DESC
		LIMIT $2`

	tracks := []catalogDomain.AudioTrack{}
	if err := r.db.SelectContext(ctx, &tracks, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent tracks: %w", err)
	}
	return tracks, nil
}

// RecentVideos returns the artist's newest public videos.
func (r *PgArtistRepository) RecentVideos(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.Video, error) {
	query := `
		SELECT v.*, a.stage_name
		FROM videos v
		JOIN artists a ON a.user_id = v.artist_id
		WHERE v.artist_id = $1 AND v.visibility = 'public'
		ORDER BY v.uploaded_at DESC
		LIMIT $2`

	videos := []catalogDomain.Video{}
	if err := r.db.SelectContext(ctx, &videos, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent videos: %w", err)
	}
	return videos, nil
}
