package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Visibility string
type ProcessingStatus string
type AlbumType string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

const (
	AlbumTypeAlbum  AlbumType = "album"
	AlbumTypeEP     AlbumType = "ep"
	AlbumTypeSingle AlbumType = "single"
)

// Genre is a reference row; the set is seeded by migration and extensible
// by admins.
type Genre struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Album groups an artist's tracks. Deleting an album does not delete its
// tracks; their album reference is cleared instead.
type Album struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ArtistID    uuid.UUID `json:"artist_id" db:"artist_id"`
	Title       string    `json:"title" db:"title"`
	AlbumType   AlbumType `json:"album_type" db:"album_type"`
	CoverURL    *string   `json:"cover_url,omitempty" db:"cover_url"`
	ReleaseYear *int      `json:"release_year,omitempty" db:"release_year"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AudioTrack represents an uploaded audio item
type AudioTrack struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	ArtistID         uuid.UUID        `json:"artist_id" db:"artist_id"`
	AlbumID          *uuid.UUID       `json:"album_id,omitempty" db:"album_id"`
	Title            string           `json:"title" db:"title"`
	Lyrics           *string          `json:"lyrics,omitempty" db:"lyrics"`
	DurationSeconds  int              `json:"duration_seconds" db:"duration_seconds"`
	AudioURL         string           `json:"audio_url" db:"audio_url"`
	ThumbnailURL     *string          `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	Format           string           `json:"format" db:"format"`
	SizeBytes        int64            `json:"size_bytes" db:"size_bytes"`
	Visibility       Visibility       `json:"visibility" db:"visibility"`
	PlayCount        int64            `json:"play_count" db:"play_count"`
	DownloadCount    int64            `json:"download_count" db:"download_count"`
	ProcessingStatus ProcessingStatus `json:"processing_status" db:"processing_status"`
	UploadedAt       time.Time        `json:"uploaded_at" db:"uploaded_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`

	// Joined columns
	ArtistName string  `json:"artist_name,omitempty" db:"artist_name"`
	StageName  string  `json:"stage_name,omitempty" db:"stage_name"`
	AlbumTitle *string `json:"album_title,omitempty" db:"album_title"`

	// Relations
	Genres []Genre `json:"genres,omitempty"`
}

// Video represents an uploaded video item
type Video struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ArtistID        uuid.UUID  `json:"artist_id" db:"artist_id"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description,omitempty" db:"description"`
	DurationSeconds int        `json:"duration_seconds" db:"duration_seconds"`
	VideoURL        string     `json:"video_url" db:"video_url"`
	ThumbnailURL    *string    `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	Format          string     `json:"format" db:"format"`
	SizeBytes       int64      `json:"size_bytes" db:"size_bytes"`
	Visibility      Visibility `json:"visibility" db:"visibility"`
	ViewCount       int64      `json:"view_count" db:"view_count"`
	DownloadCount   int64      `json:"download_count" db:"download_count"`
	UploadedAt      time.Time  `json:"uploaded_at" db:"uploaded_at"`

	// Joined columns
	StageName string `json:"stage_name,omitempty" db:"stage_name"`
}

// TrackFilter narrows public track listings
type TrackFilter struct {
	Genre  string
	Search string
	Limit  int
	Offset int
}

type TrackRepository interface {
	// Create inserts the track row and all its genre association rows in
	// one transaction; a failed association rolls back the track too.
	Create(ctx context.Context, track *AudioTrack, genreIDs []uuid.UUID) error
	GetPublicByID(ctx context.Context, id uuid.UUID) (*AudioTrack, error)
	List(ctx context.Context, filter TrackFilter) ([]AudioTrack, int, error)
	// Delete removes an owner's track and returns the blob URLs the row
	// referenced so storage can be cleaned up.
	Delete(ctx context.Context, id, artistID uuid.UUID) ([]string, error)
	// SetProcessingStatus updates the track's processing state and returns
	// the owning artist so the caller can notify them.
	SetProcessingStatus(ctx context.Context, id uuid.UUID, status ProcessingStatus) (uuid.UUID, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	GetPublicByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, limit, offset int) ([]Video, int, error)
	Delete(ctx context.Context, id, artistID uuid.UUID) ([]string, error)
}

type GenreRepository interface {
	List(ctx context.Context) ([]Genre, error)
	GetByName(ctx context.Context, name string) (*Genre, error)
	Create(ctx context.Context, genre *Genre) error
}

type AlbumRepository interface {
	Create(ctx context.Context, album *Album) error
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Album, error)
	Delete(ctx context.Context, id, artistID uuid.UUID) error
}
