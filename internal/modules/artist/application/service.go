package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/domain"
	catalogDomain "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

const (
	directoryLimit    = 50
	recentTracksLimit = 10
	recentVideosLimit = 6
)

// ArtistService exposes the public artist directory
type ArtistService struct {
	repo domain.ArtistRepository
}

func NewArtistService(repo domain.ArtistRepository) *ArtistService {
	return &ArtistService{repo: repo}
}

// ListArtists returns verified artists ranked by published track count
func (s *ArtistService) ListArtists(ctx context.Context) ([]domain.ArtistSummary, error) {
	return s.repo.List(ctx, directoryLimit)
}

// GetArtistProfile returns an artist's public page with lifetime totals
// and their most recent public tracks and videos
func (s *ArtistService) GetArtistProfile(ctx context.Context, userID uuid.UUID) (*domain.ArtistProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	tracks, err := s.repo.RecentTracks(ctx, userID, recentTracksLimit)
	if err != nil {
		return nil, err
	}
	videos, err := s.repo.RecentVideos(ctx, userID, recentVideosLimit)
	if err != nil {
		return nil, err
	}

	if tracks == nil {
		tracks = []catalogDomain.AudioTrack{}
	}
	if videos == nil {
		videos = []catalogDomain.Video{}
	}
	profile.RecentTracks = tracks
	profile.RecentVideos = videos
	return profile, nil
}
