package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

type PgVideoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) *PgVideoRepository {
	return &PgVideoRepository{db: db}
}

func (r *PgVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	if video.UploadedAt.IsZero() {
		video.UploadedAt = time.Now()
	}
	if video.Visibility == "" {
		video.Visibility = domain.VisibilityPublic
	}

	query := `
        INSERT INTO videos (
            id, artist_id, title, description, duration_seconds,
            video_url, thumbnail_url, format, size_bytes, visibility, uploaded_at
        ) VALUES (
            :id, :artist_id, :title, :description, :duration_seconds,
            :video_url, :thumbnail_url, :format, :size_bytes, :visibility, :uploaded_at
        )`

	_, err := r.db.NamedExecContext(ctx, query, video)
	return err
}

func (r *PgVideoRepository) GetPublicByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video := &domain.Video{}
	query := `
		SELECT v.*, a.stage_name
		FROM videos v
		JOIN artists a ON v.artist_id = a.user_id
		WHERE v.id = $1 AND v.visibility = 'public'
	`
	err := r.db.GetContext(ctx, video, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (r *PgVideoRepository) List(ctx context.Context, limit, offset int) ([]domain.Video, int, error) {
	var results []struct {
		domain.Video
		TotalCount int `db:"total_count"`
	}

	query := `
		SELECT v.*, a.stage_name, COUNT(*) OVER() AS total_count
		FROM videos v
		JOIN artists a ON v.artist_id = a.user_id
		WHERE v.visibility = 'public'
		ORDER BY v.uploaded_at DESC
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &results, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []domain.Video{}, 0, nil
	}

	total := results[0].TotalCount
	videos := make([]domain.Video, len(results))
	for i, res := range results {
		videos[i] = res.Video
	}
	return videos, total, nil
}

// Delete removes a video owned by the given artist and returns the blob
// URLs the row referenced for storage cleanup.
func (r *PgVideoRepository) Delete(ctx context.Context, id, artistID uuid.UUID) ([]string, error) {
	var refs struct {
		VideoURL     string  `db:"video_url"`
		ThumbnailURL *string `db:"thumbnail_url"`
	}

	query := `DELETE FROM videos WHERE id = $1 AND artist_id = $2 RETURNING video_url, thumbnail_url`
	err := r.db.GetContext(ctx, &refs, query, id, artistID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}

	urls := []string{refs.VideoURL}
	if refs.ThumbnailURL != nil && *refs.ThumbnailURL != "" {
		urls = append(urls, *refs.ThumbnailURL)
	}
	return urls, nil
}
