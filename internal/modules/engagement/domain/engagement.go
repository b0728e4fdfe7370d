package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemAudio ItemType = "audio"
	ItemVideo ItemType = "video"
)

// PlayEvent is one row of the play history log
type PlayEvent struct {
	ID       int64      `db:"id" json:"id"`
	TrackID  uuid.UUID  `db:"track_id" json:"track_id"`
	UserID   *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	ClientIP *string    `db:"client_ip" json:"client_ip,omitempty"`
	PlayedAt time.Time  `db:"played_at" json:"played_at"`
}

// Favorite marks an item a user has saved
type Favorite struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ItemID    uuid.UUID `db:"item_id" json:"item_id"`
	ItemType  ItemType  `db:"item_type" json:"item_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined columns, populated on listing
	Title     *string `db:"title" json:"title,omitempty"`
	StageName *string `db:"stage_name" json:"stage_name,omitempty"`
}

// EngagementRepository records plays, downloads and favorites.
//
// RecordPlay and RecordDownload bump the denormalized counter on the
// content row and append the event log row in one transaction; either
// both land or neither does.
type EngagementRepository interface {
	RecordPlay(ctx context.Context, trackID uuid.UUID, userID *uuid.UUID, clientIP string) error
	// RecordView bumps the video's view counter in place. Views keep no
	// event log; the counter is the record.
	RecordView(ctx context.Context, videoID uuid.UUID) error
	RecordDownload(ctx context.Context, itemID uuid.UUID, itemType ItemType, userID *uuid.UUID, clientIP string) error
	AddFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType ItemType) error
	RemoveFavorite(ctx context.Context, userID, itemID uuid.UUID, itemType ItemType) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	PurgeHistoryOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
