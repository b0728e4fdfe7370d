package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Playlist is a user-owned ordered collection of tracks
type Playlist struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Visibility  Visibility `db:"visibility" json:"visibility"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`

	// Joined column, populated on listing
	TrackCount int `db:"track_count" json:"track_count"`

	// Relations
	Tracks []PlaylistTrack `json:"tracks,omitempty"`
}

// PlaylistTrack is one track entry with its position in the playlist
type PlaylistTrack struct {
	TrackID   uuid.UUID `db:"track_id" json:"track_id"`
	Position  int       `db:"position" json:"position"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
	Title     string    `db:"title" json:"title"`
	AudioURL  string    `db:"audio_url" json:"audio_url"`
	StageName string    `db:"stage_name" json:"stage_name"`
}

type PlaylistRepository interface {
	// Create inserts the playlist and all its initial track entries in one
	// transaction; positions are persisted exactly as given.
	Create(ctx context.Context, playlist *Playlist, trackIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Playlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Playlist, error)
	AddTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID, position int) error
	RemoveTrack(ctx context.Context, playlistID, ownerID, trackID uuid.UUID) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
