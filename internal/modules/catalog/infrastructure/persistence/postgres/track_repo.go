package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

type PgTrackRepository struct {
	db *sqlx.DB
}

func NewTrackRepository(db *sqlx.DB) *PgTrackRepository {
	return &PgTrackRepository{db: db}
}

// Create inserts the track and its genre associations in one transaction.
// If any genre insert fails (unknown genre id, constraint violation) the
// whole upload rolls back and no rows remain.
func (r *PgTrackRepository) Create(ctx context.Context, track *domain.AudioTrack, genreIDs []uuid.UUID) error {
	if track.ID == uuid.Nil {
		track.ID = uuid.New()
	}
	if track.UploadedAt.IsZero() {
		track.UploadedAt = time.Now()
	}
	track.UpdatedAt = time.Now()
	if track.Visibility == "" {
		track.Visibility = domain.VisibilityPublic
	}
	if track.ProcessingStatus == "" {
		track.ProcessingStatus = domain.StatusPending
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO audio_tracks (
            id, artist_id, album_id, title, lyrics, duration_seconds,
            audio_url, thumbnail_url, format, size_bytes, visibility,
            processing_status, uploaded_at, updated_at
        ) VALUES (
            :id, :artist_id, :album_id, :title, :lyrics, :duration_seconds,
            :audio_url, :thumbnail_url, :format, :size_bytes, :visibility,
            :processing_status, :uploaded_at, :updated_at
        )`

	_, err = tx.NamedExecContext(ctx, query, track)
	if err != nil {
		return err
	}

	for _, genreID := range genreIDs {
		genreQuery := `INSERT INTO track_genres (track_id, genre_id) VALUES ($1, $2)`
		_, err = tx.ExecContext(ctx, genreQuery, track.ID, genreID)
		if err != nil {
			return fmt.Errorf("failed to associate genre %s: %w", genreID, err)
		}
	}

	// Read queries join this in; a freshly created track needs it for the
	// upload broadcast.
	err = tx.GetContext(ctx, &track.StageName,
		`SELECT stage_name FROM artists WHERE user_id = $1`, track.ArtistID)
	if err != nil {
		return fmt.Errorf("failed to load artist stage name: %w", err)
	}

	return tx.Commit()
}

// GetPublicByID returns a public track with its artist names, album title
// and genre list, or domain.ErrTrackNotFound.
func (r *PgTrackRepository) GetPublicByID(ctx context.Context, id uuid.UUID) (*domain.AudioTrack, error) {
	track := &domain.AudioTrack{}

	query := `
		SELECT t.*, u.full_name AS artist_name, a.stage_name, al.title AS album_title
		FROM audio_tracks t
		JOIN artists a ON t.artist_id = a.user_id
		JOIN users u ON a.user_id = u.id
		LEFT JOIN albums al ON t.album_id = al.id
		WHERE t.id = $1 AND t.visibility = 'public'
	`
	err := r.db.GetContext(ctx, track, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTrackNotFound
	}
	if err != nil {
		return nil, err
	}

	genreQuery := `SELECT g.* FROM genres g JOIN track_genres tg ON g.id = tg.genre_id WHERE tg.track_id = $1 ORDER BY g.name`
	err = r.db.SelectContext(ctx, &track.Genres, genreQuery, id)
	if err != nil {
		return nil, err
	}
	return track, nil
}

// List returns public tracks ordered by upload recency, with the matching
// total for pagination. Search matches title, artist full name or stage
// name case-insensitively; a genre filter restricts to tracks associated
// with that genre name.
func (r *PgTrackRepository) List(ctx context.Context, filter domain.TrackFilter) ([]domain.AudioTrack, int, error) {
	var results []struct {
		domain.AudioTrack
		TotalCount int `db:"total_count"`
	}

	query := `
		SELECT t.*, u.full_name AS artist_name, a.stage_name, COUNT(*) OVER() AS total_count
		FROM audio_tracks t
		JOIN artists a ON t.artist_id = a.user_id
		JOIN users u ON a.user_id = u.id
		WHERE t.visibility = 'public'
	`
	args := []interface{}{}
	argID := 1

	if filter.Genre != "" {
		query += fmt.Sprintf(` AND t.id IN (
            SELECT tg.track_id FROM track_genres tg
            JOIN genres g ON tg.genre_id = g.id
            WHERE g.name ILIKE $%d
        )`, argID)
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query += fmt.Sprintf(" AND (t.title ILIKE $%d OR u.full_name ILIKE $%d OR a.stage_name ILIKE $%d)", argID, argID, argID)
		args = append(args, searchTerm)
		argID++
	}

	query += fmt.Sprintf(" ORDER BY t.uploaded_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	err := r.db.SelectContext(ctx, &results, query, args...)
	if err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []domain.AudioTrack{}, 0, nil
	}

	total := results[0].TotalCount
	tracks := make([]domain.AudioTrack, len(results))

	trackMap := make(map[uuid.UUID]*domain.AudioTrack, len(results))
	trackIDs := make([]uuid.UUID, len(results))

	for i, res := range results {
		tracks[i] = res.AudioTrack
		tracks[i].Genres = []domain.Genre{}
		trackMap[tracks[i].ID] = &tracks[i]
		trackIDs[i] = tracks[i].ID
	}

	// Bulk fetch genre names for the page
	genreQuery, inArgs, err := sqlx.In(`
		SELECT tg.track_id, g.*
		FROM genres g
		JOIN track_genres tg ON g.id = tg.genre_id
		WHERE tg.track_id IN (?)`, trackIDs)
	if err != nil {
		return nil, 0, err
	}
	genreQuery = r.db.Rebind(genreQuery)

	var genreRows []struct {
		TrackID uuid.UUID `db:"track_id"`
		domain.Genre
	}

	err = r.db.SelectContext(ctx, &genreRows, genreQuery, inArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch genres: %w", err)
	}

	for _, row := range genreRows {
		if track, ok := trackMap[row.TrackID]; ok {
			track.Genres = append(track.Genres, row.Genre)
		}
	}

	return tracks, total, nil
}

// Delete removes a track owned by the given artist. Association rows go
// with it via the schema's cascades. The blob URLs the row referenced are
// returned so the caller can clean up storage.
func (r *PgTrackRepository) Delete(ctx context.Context, id, artistID uuid.UUID) ([]string, error) {
	var refs struct {
		AudioURL     string  `db:"audio_url"`
		ThumbnailURL *string `db:"thumbnail_url"`
	}

	query := `DELETE FROM audio_tracks WHERE id = $1 AND artist_id = $2 RETURNING audio_url, thumbnail_url`
	err := r.db.GetContext(ctx, &refs, query, id, artistID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTrackNotFound
	}
	if err != nil {
		return nil, err
	}

	urls := []string{refs.AudioURL}
	if refs.ThumbnailURL != nil && *refs.ThumbnailURL != "" {
		urls = append(urls, *refs.ThumbnailURL)
	}
	return urls, nil
}

// SetProcessingStatus updates the track's processing state and returns the
// owning artist id
func (r *PgTrackRepository) SetProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) (uuid.UUID, error) {
	var artistID uuid.UUID
	err := r.db.GetContext(ctx, &artistID,
		`UPDATE audio_tracks SET processing_status = $1, updated_at = $2 WHERE id = $3 RETURNING artist_id`,
		status, time.Now(), id)
	if err == sql.ErrNoRows {
		return uuid.Nil, domain.ErrTrackNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return artistID, nil
}
