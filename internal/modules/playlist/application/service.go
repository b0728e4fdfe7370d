package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/domain"
)

// PlaylistService manages user playlists
type PlaylistService struct {
	repo domain.PlaylistRepository
}

func NewPlaylistService(repo domain.PlaylistRepository) *PlaylistService {
	return &PlaylistService{repo: repo}
}

// CreatePlaylist creates a playlist with its initial tracks in order.
// The playlist and every entry land together or not at all.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, userID uuid.UUID, name string, description *string, visibility domain.Visibility, trackIDs []uuid.UUID) (*domain.Playlist, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if visibility != domain.VisibilityPublic {
		visibility = domain.VisibilityPrivate
	}

	playlist := &domain.Playlist{
		UserID:      userID,
		Name:        name,
		Description: description,
		Visibility:  visibility,
	}
	if err := s.repo.Create(ctx, playlist, trackIDs); err != nil {
		return nil, err
	}
	playlist.TrackCount = len(trackIDs)
	return playlist, nil
}

// GetPlaylist returns a playlist with its tracks in position order.
// Private playlists are visible to their owner only.
func (s *PlaylistService) GetPlaylist(ctx context.Context, id uuid.UUID, requester *uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.Visibility == domain.VisibilityPrivate {
		if requester == nil || *requester != playlist.UserID {
			return nil, domain.ErrPlaylistNotFound
		}
	}
	return playlist, nil
}

// ListUserPlaylists returns the caller's playlists, newest first
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID uuid.UUID) ([]domain.Playlist, error) {
	return s.repo.ListByUser(ctx, userID)
}

// AddTrack appends a track to an owned playlist. A negative position
// means append to the end.
func (s *PlaylistService) AddTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID, position int) error {
	return s.repo.AddTrack(ctx, playlistID, ownerID, trackID, position)
}

// RemoveTrack drops a track from an owned playlist
func (s *PlaylistService) RemoveTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID) error {
	return s.repo.RemoveTrack(ctx, playlistID, ownerID, trackID)
}

// DeletePlaylist removes an owned playlist and its entries
func (s *PlaylistService) DeletePlaylist(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.repo.Delete(ctx, id, ownerID)
}
