package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

type PgGenreRepository struct {
	db *sqlx.DB
}

func NewGenreRepository(db *sqlx.DB) *PgGenreRepository {
	return &PgGenreRepository{db: db}
}

func (r *PgGenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	genres := []domain.Genre{}
	err := r.db.SelectContext(ctx, &genres, `SELECT * FROM genres ORDER BY name`)
	return genres, err
}

func (r *PgGenreRepository) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	genre := &domain.Genre{}
	err := r.db.GetContext(ctx, genre, `SELECT * FROM genres WHERE name ILIKE $1`, name)
	if err == sql.ErrNoRows {
		return nil, domain.ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (r *PgGenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = time.Now()
	}

	query := `INSERT INTO genres (id, name, description, created_at) VALUES (:id, :name, :description, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, genre)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrGenreExists
		}
		return err
	}
	return nil
}
