package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

type PgAlbumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) *PgAlbumRepository {
	return &PgAlbumRepository{db: db}
}

func (r *PgAlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	if album.CreatedAt.IsZero() {
		album.CreatedAt = time.Now()
	}
	if album.AlbumType == "" {
		album.AlbumType = domain.AlbumTypeAlbum
	}

	query := `INSERT INTO albums (id, artist_id, title, album_type, cover_url, release_year, created_at)
	          VALUES (:id, :artist_id, :title, :album_type, :cover_url, :release_year, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, album)
	return err
}

func (r *PgAlbumRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Album, error) {
	albums := []domain.Album{}
	err := r.db.SelectContext(ctx, &albums,
		`SELECT * FROM albums WHERE artist_id = $1 ORDER BY created_at DESC`, artistID)
	return albums, err
}

// Delete removes an album; tracks referencing it keep existing with their
// album reference cleared by the schema's SET NULL rule.
func (r *PgAlbumRepository) Delete(ctx context.Context, id, artistID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1 AND artist_id = $2`, id, artistID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}
