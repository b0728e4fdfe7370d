package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrackRepo struct {
	lastFilter domain.TrackFilter
	lastStatus domain.ProcessingStatus
	total      int
	created    *domain.AudioTrack
	genreIDs   []uuid.UUID
}

func (f *fakeTrackRepo) Create(ctx context.Context, track *domain.AudioTrack, genreIDs []uuid.UUID) error {
	f.created = track
	f.genreIDs = genreIDs
	return nil
}

func (f *fakeTrackRepo) GetPublicByID(ctx context.Context, id uuid.UUID) (*domain.AudioTrack, error) {
	return nil, domain.ErrTrackNotFound
}

func (f *fakeTrackRepo) List(ctx context.Context, filter domain.TrackFilter) ([]domain.AudioTrack, int, error) {
	f.lastFilter = filter
	return []domain.AudioTrack{}, f.total, nil
}

func (f *fakeTrackRepo) Delete(ctx context.Context, id, artistID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeTrackRepo) SetProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) (uuid.UUID, error) {
	f.lastStatus = status
	return uuid.New(), nil
}

func TestListTracks_NormalizesPagination(t *testing.T) {
	repo := &fakeTrackRepo{total: 45}
	svc := NewCatalogService(repo, nil, nil, nil)
	ctx := context.Background()

	_, p, err := svc.ListTracks(ctx, 0, 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, p, err = svc.ListTracks(ctx, 3, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Offset)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 5, p.TotalPages)

	// Oversized page size falls back to the default
	_, p, err = svc.ListTracks(ctx, 1, 500, "", "")
	require.NoError(t, err)
	assert.Equal(t, 20, p.PageSize)
}

func TestListTracks_EmptyResultPagination(t *testing.T) {
	repo := &fakeTrackRepo{total: 0}
	svc := NewCatalogService(repo, nil, nil, nil)

	_, p, err := svc.ListTracks(context.Background(), 1, 20, "", "")
	require.NoError(t, err)
	assert.Zero(t, p.Total)
	assert.Zero(t, p.TotalPages)
}

func TestUploadTrack_RequiresTitleAndAudio(t *testing.T) {
	repo := &fakeTrackRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)
	ctx := context.Background()

	err := svc.UploadTrack(ctx, &domain.AudioTrack{AudioURL: "http://cdn/a.mp3"}, nil)
	assert.Error(t, err)

	err = svc.UploadTrack(ctx, &domain.AudioTrack{Title: "Song"}, nil)
	assert.Error(t, err)

	genres := []uuid.UUID{uuid.New()}
	err = svc.UploadTrack(ctx, &domain.AudioTrack{Title: "Song", AudioURL: "http://cdn/a.mp3"}, genres)
	require.NoError(t, err)
	assert.Equal(t, genres, repo.genreIDs)
}

func TestMarkTrackProcessed(t *testing.T) {
	repo := &fakeTrackRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.MarkTrackProcessed(ctx, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.lastStatus)

	_, err = svc.MarkTrackProcessed(ctx, uuid.New(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, repo.lastStatus)
}
