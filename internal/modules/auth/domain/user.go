package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleListener UserRole = "listener"
	RoleArtist   UserRole = "artist"
	RoleAdmin    UserRole = "admin"
)

// User represents an account in the system
type User struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	FullName           string     `json:"full_name" db:"full_name"`
	Role               UserRole   `json:"role" db:"role"`
	IsVerified         bool       `json:"is_verified" db:"is_verified"`
	VerificationDocURL *string    `json:"verification_doc_url,omitempty" db:"verification_doc_url"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`

	// Relations
	Artist *ArtistProfile `json:"artist,omitempty"`
}

// ArtistProfile is the role-specific extension record for users with
// role=artist, keyed by the owning user's id.
type ArtistProfile struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	StageName    string    `json:"stage_name" db:"stage_name"`
	YearsActive  *string   `json:"years_active,omitempty" db:"years_active"`
	WebsiteURL   *string   `json:"website_url,omitempty" db:"website_url"`
	FacebookURL  *string   `json:"facebook_url,omitempty" db:"facebook_url"`
	TwitterURL   *string   `json:"twitter_url,omitempty" db:"twitter_url"`
	InstagramURL *string   `json:"instagram_url,omitempty" db:"instagram_url"`
	YoutubeURL   *string   `json:"youtube_url,omitempty" db:"youtube_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName           *string
	VerificationDocURL *string
	StageName          *string
	YearsActive        *string
	WebsiteURL         *string
	FacebookURL        *string
	TwitterURL         *string
	InstagramURL       *string
	YoutubeURL         *string
}

type UserRepository interface {
	// Create inserts the user row and, when artist is non-nil, the artist
	// row in a single transaction.
	Create(ctx context.Context, user *User, artist *ArtistProfile) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error
}
