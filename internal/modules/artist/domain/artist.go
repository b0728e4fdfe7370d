package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	catalogDomain "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

// ArtistSummary is one row of the public artist directory
type ArtistSummary struct {
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	FullName   string    `db:"full_name" json:"full_name"`
	StageName  string    `db:"stage_name" json:"stage_name"`
	TrackCount int       `db:"track_count" json:"track_count"`
	VideoCount int       `db:"video_count" json:"video_count"`
	AlbumCount int       `db:"album_count" json:"album_count"`
	JoinedAt   time.Time `db:"joined_at" json:"joined_at"`
}

// ArtistProfile is the full public page for a single artist
type ArtistProfile struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	StageName      string    `db:"stage_name" json:"stage_name"`
	YearsActive    *string   `db:"years_active" json:"years_active,omitempty"`
	WebsiteURL     *string   `db:"website_url" json:"website_url,omitempty"`
	FacebookURL    *string   `db:"facebook_url" json:"facebook_url,omitempty"`
	TwitterURL     *string   `db:"twitter_url" json:"twitter_url,omitempty"`
	InstagramURL   *string   `db:"instagram_url" json:"instagram_url,omitempty"`
	YoutubeURL     *string   `db:"youtube_url" json:"youtube_url,omitempty"`
	JoinedAt       time.Time `db:"joined_at" json:"joined_at"`
	TotalPlays     int64     `db:"total_plays" json:"total_plays"`
	TotalDownloads int64     `db:"total_downloads" json:"total_downloads"`

	RecentTracks []catalogDomain.AudioTrack `json:"recent_tracks"`
	RecentVideos []catalogDomain.Video      `json:"recent_videos"`
}

// ArtistRepository reads the public artist directory
type ArtistRepository interface {
	List(ctx context.Context, limit int) ([]ArtistSummary, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ArtistProfile, error)
	RecentTracks(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.AudioTrack, error)
	RecentVideos(ctx context.Context, userID uuid.UUID, limit int) ([]catalogDomain.Video, error)
}
