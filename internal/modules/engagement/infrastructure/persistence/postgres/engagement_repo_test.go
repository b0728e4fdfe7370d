package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/domain"
	engagementPostgres "github.com/mwesigwa/tunestream-backend/internal/modules/engagement/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgEngagementRepository_RecordPlayCommitsCounterAndLogTogether(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	ctx := context.Background()
	trackID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE audio_tracks SET play_count = play_count \\+ 1 WHERE id = \\$1").
		WithArgs(trackID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO play_history \\(track_id, user_id, client_ip\\)").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordPlay(ctx, trackID, &userID, "10.0.0.1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEngagementRepository_RecordPlayRollsBackWhenLogInsertFails(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	ctx := context.Background()
	trackID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE audio_tracks SET play_count = play_count \\+ 1 WHERE id = \\$1").
		WithArgs(trackID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO play_history").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.RecordPlay(ctx, trackID, nil, "")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEngagementRepository_RecordPlayUnknownTrack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	ctx := context.Background()
	trackID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE audio_tracks SET play_count = play_count \\+ 1 WHERE id = \\$1").
		WithArgs(trackID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RecordPlay(ctx, trackID, nil, "")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEngagementRepository_RecordDownloadVideo(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	ctx := context.Background()
	videoID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE videos SET download_count = download_count \\+ 1 WHERE id = \\$1").
		WithArgs(videoID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO downloads \\(item_id, item_type, user_id, client_ip\\)").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordDownload(ctx, videoID, domain.ItemVideo, nil, "10.0.0.1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEngagementRepository_RecordDownloadRejectsBadType(t *testing.T) {
	db, _, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)

	err := repo.RecordDownload(context.Background(), uuid.New(), "image", nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidItemType)
}

func TestPgEngagementRepository_AddFavoriteIdempotency(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	mock.ExpectExec("INSERT INTO favorites \\(user_id, item_id, item_type\\) VALUES \\(\\$1, \\$2, \\$3\\) ON CONFLICT DO NOTHING").
		WithArgs(userID, itemID, domain.ItemAudio).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AddFavorite(ctx, userID, itemID, domain.ItemAudio))

	// Second insert conflicts, zero rows affected
	mock.ExpectExec("INSERT INTO favorites \\(user_id, item_id, item_type\\) VALUES \\(\\$1, \\$2, \\$3\\) ON CONFLICT DO NOTHING").
		WithArgs(userID, itemID, domain.ItemAudio).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.AddFavorite(ctx, userID, itemID, domain.ItemAudio)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestPgEngagementRepository_RemoveFavoriteNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	userID := uuid.New()
	itemID := uuid.New()

	mock.ExpectExec("DELETE FROM favorites WHERE user_id = \\$1 AND item_id = \\$2 AND item_type = \\$3").
		WithArgs(userID, itemID, domain.ItemVideo).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveFavorite(context.Background(), userID, itemID, domain.ItemVideo)
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}

func TestPgEngagementRepository_PurgeHistoryOlderThan(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectExec("DELETE FROM play_history WHERE played_at < \\$1").
		WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 137))

	purged, err := repo.PurgeHistoryOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(137), purged)
}

func TestPgEngagementRepository_RecordViewIncrementsCounter(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	videoID := uuid.New()

	mock.ExpectExec("UPDATE videos SET view_count = view_count \\+ 1 WHERE id = \\$1").
		WithArgs(videoID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordView(context.Background(), videoID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEngagementRepository_RecordViewUnknownVideo(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := engagementPostgres.NewEngagementRepository(db)
	videoID := uuid.New()

	mock.ExpectExec("UPDATE videos SET view_count = view_count \\+ 1 WHERE id = \\$1").
		WithArgs(videoID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordView(context.Background(), videoID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
