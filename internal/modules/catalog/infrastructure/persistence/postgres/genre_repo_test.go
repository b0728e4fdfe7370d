package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
	catalogPostgres "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgGenreRepository_List(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := catalogPostgres.NewGenreRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
		AddRow(uuid.New(), "Afrobeat", nil, time.Now()).
		AddRow(uuid.New(), "Gospel", nil, time.Now())
	mock.ExpectQuery("SELECT \\* FROM genres ORDER BY name").WillReturnRows(rows)

	genres, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 2)
	assert.Equal(t, "Afrobeat", genres[0].Name)
}

func TestPgGenreRepository_GetByNameNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := catalogPostgres.NewGenreRepository(db)

	mock.ExpectQuery("SELECT \\* FROM genres WHERE name ILIKE \\$1").
		WithArgs("Polka").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "Polka")
	assert.ErrorIs(t, err, domain.ErrGenreNotFound)
}

func TestPgGenreRepository_CreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := catalogPostgres.NewGenreRepository(db)

	mock.ExpectExec("INSERT INTO genres").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &domain.Genre{Name: "Afrobeat"})
	assert.ErrorIs(t, err, domain.ErrGenreExists)
}
