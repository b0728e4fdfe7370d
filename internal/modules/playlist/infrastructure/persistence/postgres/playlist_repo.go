package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/domain"
)

// PgPlaylistRepository persists playlists and their ordered entries.
type PgPlaylistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) *PgPlaylistRepository {
	return &PgPlaylistRepository{db: db}
}

// Create inserts the playlist row and one entry per track, positions
// following the order the tracks were given in. Any failed entry rolls
// back the whole playlist.
func (r *PgPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist, trackIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO playlists (user_id, name, description, visibility)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := tx.QueryRowxContext(ctx, query,
		playlist.UserID, playlist.Name, playlist.Description, playlist.Visibility,
	).Scan(&playlist.ID, &playlist.CreatedAt); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	for i, trackID := range trackIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES ($1, $2, $3)`,
			playlist.ID, trackID, i)
		if err != nil {
			return fmt.Errorf("failed to add track %s: %w", trackID, err)
		}
	}

	return tx.Commit()
}

// GetByID loads a playlist with its tracks ordered by position. Access
// control is the service's concern.
func (r *PgPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.db.GetContext(ctx, &playlist,
		`SELECT id, user_id, name, description, visibility, created_at,
		        (SELECT COUNT(*) FROM playlist_tracks pt WHERE pt.playlist_id = playlists.id) AS track_count
		 FROM playlists WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	query := `
		SELECT pt.track_id, pt.position, pt.added_at, t.title, t.audio_url, a.stage_name
		FROM playlist_tracks pt
		JOIN audio_tracks t ON t.id = pt.track_id
		JOIN artists a ON a.user_id = t.artist_id
		WHERE pt.playlist_id = $1
		ORDER BY pt.position ASC, pt.added_at ASC`

	tracks := []domain.PlaylistTrack{}
	if err := r.db.SelectContext(ctx, &tracks, query, id); err != nil {
		return nil, fmt.Errorf("failed to load playlist tracks: %w", err)
	}
	playlist.Tracks = tracks
	return &playlist, nil
}

// ListByUser returns the user's playlists with entry counts, newest first.
func (r *PgPlaylistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Playlist, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.visibility, p.created_at,
		       (SELECT COUNT(*) FROM playlist_tracks pt WHERE pt.playlist_id = p.id) AS track_count
		FROM playlists p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	playlists := []domain.Playlist{}
	if err := r.db.SelectContext(ctx, &playlists, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// AddTrack appends a track to an owned playlist. Position defaults to
// one past the current end when the caller passes a negative value.
func (r *PgPlaylistRepository) AddTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID, position int) error {
	if err := r.checkOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}

	var query string
	args := []any{playlistID, trackID}
	if position < 0 {
		query = `
			INSERT INTO playlist_tracks (playlist_id, track_id, position)
			VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_tracks WHERE playlist_id = $1))`
	} else {
		query = `INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES ($1, $2, $3)`
		args = append(args, position)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrTrackAlreadyIn
		}
		return fmt.Errorf("failed to add track to playlist: %w", err)
	}
	return nil
}

func (r *PgPlaylistRepository) RemoveTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID) error {
	if err := r.checkOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_tracks WHERE playlist_id = $1 AND track_id = $2`, playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to remove track from playlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTrackNotInList
	}
	return nil
}

// Delete removes an owned playlist; its entries go with it.
func (r *PgPlaylistRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *PgPlaylistRepository) checkOwner(ctx context.Context, playlistID, ownerID uuid.UUID) error {
	var owner uuid.UUID
	err := r.db.GetContext(ctx, &owner, `SELECT user_id FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPlaylistNotFound
		}
		return fmt.Errorf("failed to check playlist owner: %w", err)
	}
	if owner != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
