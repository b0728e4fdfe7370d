package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaylistRepo struct {
	stored   *domain.Playlist
	trackIDs []uuid.UUID
}

func (f *fakePlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist, trackIDs []uuid.UUID) error {
	playlist.ID = uuid.New()
	f.stored = playlist
	f.trackIDs = trackIDs
	return nil
}

func (f *fakePlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, domain.ErrPlaylistNotFound
	}
	return f.stored, nil
}

func (f *fakePlaylistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Playlist, error) {
	return nil, nil
}

func (f *fakePlaylistRepo) AddTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID, position int) error {
	return nil
}

func (f *fakePlaylistRepo) RemoveTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID) error {
	return nil
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error { return nil }

func TestCreatePlaylist_DefaultsToPrivate(t *testing.T) {
	repo := &fakePlaylistRepo{}
	svc := NewPlaylistService(repo)

	playlist, err := svc.CreatePlaylist(context.Background(), uuid.New(), "Mix", nil, "unlisted", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPrivate, playlist.Visibility)
}

func TestCreatePlaylist_RequiresName(t *testing.T) {
	svc := NewPlaylistService(&fakePlaylistRepo{})

	_, err := svc.CreatePlaylist(context.Background(), uuid.New(), "", nil, domain.VisibilityPublic, nil)
	assert.Error(t, err)
}

func TestCreatePlaylist_PreservesTrackOrder(t *testing.T) {
	repo := &fakePlaylistRepo{}
	svc := NewPlaylistService(repo)
	tracks := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	playlist, err := svc.CreatePlaylist(context.Background(), uuid.New(), "Ordered", nil, domain.VisibilityPublic, tracks)
	require.NoError(t, err)
	assert.Equal(t, tracks, repo.trackIDs)
	assert.Equal(t, 3, playlist.TrackCount)
}

func TestGetPlaylist_PrivateHiddenFromOthers(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	repo := &fakePlaylistRepo{}
	svc := NewPlaylistService(repo)

	playlist, err := svc.CreatePlaylist(context.Background(), owner, "Secret", nil, domain.VisibilityPrivate, nil)
	require.NoError(t, err)

	// Owner sees it
	_, err = svc.GetPlaylist(context.Background(), playlist.ID, &owner)
	require.NoError(t, err)

	// Anonymous and other users get not found, not forbidden
	_, err = svc.GetPlaylist(context.Background(), playlist.ID, nil)
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)

	_, err = svc.GetPlaylist(context.Background(), playlist.ID, &stranger)
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestGetPlaylist_PublicVisibleToAll(t *testing.T) {
	repo := &fakePlaylistRepo{}
	svc := NewPlaylistService(repo)

	playlist, err := svc.CreatePlaylist(context.Background(), uuid.New(), "Open", nil, domain.VisibilityPublic, nil)
	require.NoError(t, err)

	_, err = svc.GetPlaylist(context.Background(), playlist.ID, nil)
	require.NoError(t, err)
}
