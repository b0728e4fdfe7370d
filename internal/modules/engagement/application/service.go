package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/domain"
)

// EngagementService records listener activity against catalog items
type EngagementService struct {
	repo domain.EngagementRepository
}

func NewEngagementService(repo domain.EngagementRepository) *EngagementService {
	return &EngagementService{repo: repo}
}

// RecordPlay counts one play of a track. userID is nil for anonymous
// listeners; the counter bump and the history row commit together.
func (s *EngagementService) RecordPlay(ctx context.Context, trackID uuid.UUID, userID *uuid.UUID, clientIP string) error {
	return s.repo.RecordPlay(ctx, trackID, userID, clientIP)
}

// RecordView counts one view of a video
func (s *EngagementService) RecordView(ctx context.Context, videoID uuid.UUID) error {
	return s.repo.RecordView(ctx, videoID)
}

// RecordDownload counts one download of an audio or video item
func (s *EngagementService) RecordDownload(ctx context.Context, itemID uuid.UUID, itemType domain.ItemType, userID *uuid.UUID, clientIP string) error {
	if itemType != domain.ItemAudio && itemType != domain.ItemVideo {
		return domain.ErrInvalidItemType
	}
	return s.repo.RecordDownload(ctx, itemID, itemType, userID, clientIP)
}

// AddFavorite saves an item for the user; saving twice is reported
func (s *EngagementService) AddFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType domain.ItemType) error {
	if itemType != domain.ItemAudio && itemType != domain.ItemVideo {
		return domain.ErrInvalidItemType
	}
	return s.repo.AddFavorite(ctx, userID, itemID, itemType)
}

// RemoveFavorite drops an item from the user's favorites
func (s *EngagementService) RemoveFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType domain.ItemType) error {
	if itemType != domain.ItemAudio && itemType != domain.ItemVideo {
		return domain.ErrInvalidItemType
	}
	return s.repo.RemoveFavorite(ctx, userID, itemID, itemType)
}

// ListFavorites returns the user's saved items, newest first
func (s *EngagementService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	return s.repo.ListFavorites(ctx, userID)
}

// PurgeHistory trims play history rows older than the retention window.
// Lifetime counters on the content rows are not touched.
func (s *EngagementService) PurgeHistory(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.PurgeHistoryOlderThan(ctx, time.Now().Add(-retention))
}
