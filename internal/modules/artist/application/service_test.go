package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/domain"
	catalogDomain "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArtistRepo struct {
	profile     *domain.ArtistProfile
	listLimit   int
	tracksLimit int
	videosLimit int
}

func (f *fakeArtistRepo) List(ctx context.Context, limit int) ([]domain.ArtistSummary, error) {
	f.listLimit = limit
	return []domain.ArtistSummary{}, nil
}

func (f *fakeArtistRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ArtistProfile, error) {
	if f.profile == nil {
		return nil, domain.ErrArtistNotFound
	}
	return f.profile, nil
}

func (f *fakeArtistRepo) RecentTracks(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.AudioTrack, error) {
	f.tracksLimit = limit
	return nil, nil
}

func (f *fakeArtistRepo) RecentVideos(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.Video, error) {
	f.videosLimit = limit
	return nil, nil
}

func TestListArtists_CapsDirectorySize(t *testing.T) {
	repo := &fakeArtistRepo{}
	svc := NewArtistService(repo)

	_, err := svc.ListArtists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, repo.listLimit)
}

func TestGetArtistProfile_AttachesRecentContent(t *testing.T) {
	repo := &fakeArtistRepo{profile: &domain.ArtistProfile{UserID: uuid.New(), StageName: "Stage"}}
	svc := NewArtistService(repo)

	profile, err := svc.GetArtistProfile(context.Background(), repo.profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.tracksLimit)
	assert.Equal(t, 6, repo.videosLimit)
	assert.NotNil(t, profile.RecentTracks)
	assert.NotNil(t, profile.RecentVideos)
}

func TestGetArtistProfile_NotFound(t *testing.T) {
	svc := NewArtistService(&fakeArtistRepo{})

	_, err := svc.GetArtistProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrArtistNotFound)
}
