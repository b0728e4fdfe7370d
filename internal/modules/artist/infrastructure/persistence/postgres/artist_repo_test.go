package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/domain"
	artistPostgres "github.com/mwesigwa/tunestream-backend/internal/modules/artist/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgArtistRepository_ListVerifiedWithCounts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := artistPostgres.NewArtistRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"user_id", "full_name", "stage_name", "joined_at", "track_count", "video_count", "album_count",
	}).
		AddRow(uuid.New(), "Busy Artist", "Busy", now, 12, 3, 2).
		AddRow(uuid.New(), "Quiet Artist", "Quiet", now, 1, 0, 0)
	mock.ExpectQuery("SELECT u\\.id AS user_id, u\\.full_name, a\\.stage_name").
		WithArgs(50).WillReturnRows(rows)

	artists, err := repo.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Busy", artists[0].StageName)
	assert.Equal(t, 12, artists[0].TrackCount)
}

func TestPgArtistRepository_GetProfileNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := artistPostgres.NewArtistRepository(db)
	id := uuid.New()

	mock.ExpectQuery("SELECT u\\.id AS user_id, u\\.full_name, a\\.stage_name").
		WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProfile(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrArtistNotFound)
}

func TestPgArtistRepository_GetProfileTotals(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := artistPostgres.NewArtistRepository(db)
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"user_id", "full_name", "stage_name", "years_active", "website_url",
		"facebook_url", "twitter_url", "instagram_url", "youtube_url", "joined_at",
		"total_plays", "total_downloads",
	}).AddRow(id, "An Artist", "Stage", nil, nil, nil, nil, nil, nil, now, 1500, 230)
	mock.ExpectQuery("SELECT u\\.id AS user_id, u\\.full_name, a\\.stage_name").
		WithArgs(id).WillReturnRows(rows)

	profile, err := repo.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), profile.TotalPlays)
	assert.Equal(t, int64(230), profile.TotalDownloads)
}

func TestPgArtistRepository_RecentTracks(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := artistPostgres.NewArtistRepository(db)
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "artist_id", "album_id", "title", "lyrics", "duration_seconds",
		"audio_url", "thumbnail_url", "format", "size_bytes", "visibility",
		"play_count", "download_count", "processing_status", "uploaded_at", "updated_at",
		"artist_name", "stage_name",
	}).AddRow(
		uuid.New(), id, nil, "Newest", nil, 200,
		"http://cdn/a.mp3", nil, "mp3", 2048, "public",
		10, 1, "completed", now, now,
		"An Artist", "Stage",
	)
	mock.ExpectQuery("SELECT t\\.\\*, u\\.full_name AS artist_name, a\\.stage_name").
		WithArgs(id, 10).WillReturnRows(rows)

	tracks, err := repo.RecentTracks(context.Background(), id, 10)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Newest", tracks[0].Title)
}
