package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a PostgreSQL-backed user repository.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Create inserts the user row and, for artist accounts, the artist profile
// row inside one transaction. If the artist insert fails the user row is
// rolled back, so a half-registered artist can never be observed.
// Create implements domain.UserRepository
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User, artist *domain.ArtistProfile) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (id, email, password_hash, full_name, role, is_verified, verification_doc_url, created_at, updated_at)
	          VALUES (:id, :email, :password_hash, :full_name, :role, :is_verified, :verification_doc_url, :created_at, :updated_at)`

	_, err = tx.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // Unique violation
				return domain.ErrEmailTaken
			}
		}
		return err
	}

	if artist != nil {
		artist.UserID = user.ID
		if artist.CreatedAt.IsZero() {
			artist.CreatedAt = time.Now()
		}

		artistQuery := `INSERT INTO artists (user_id, stage_name, years_active, website_url, facebook_url, twitter_url, instagram_url, youtube_url, created_at)
		                VALUES (:user_id, :stage_name, :years_active, :website_url, :facebook_url, :twitter_url, :instagram_url, :youtube_url, :created_at)`

		_, err = tx.NamedExecContext(ctx, artistQuery, artist)
		if err != nil {
			return fmt.Errorf("failed to create artist profile: %w", err)
		}
	}

	return tx.Commit()
}

// GetByEmail retrieves a user by email address. The artist extension row,
// when present, is attached.
// GetByEmail implements domain.UserRepository
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, user, query, email)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachArtist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by id, or domain.ErrUserNotFound.
// GetByID implements domain.UserRepository
func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, user, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachArtist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PgUserRepository) attachArtist(ctx context.Context, user *domain.User) error {
	if user.Role != domain.RoleArtist {
		return nil
	}
	artist := &domain.ArtistProfile{}
	err := r.db.GetContext(ctx, artist, `SELECT * FROM artists WHERE user_id = $1`, user.ID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	user.Artist = artist
	return nil
}

// UpdateLastLogin stamps the user's last successful login time
func (r *PgUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return err
}

// UpdateProfile applies a partial update: only non-nil fields are written.
// User-level and artist-level fields go to their respective tables inside
// one transaction.
func (r *PgUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userClauses := []string{}
	userArgs := []interface{}{}
	argIndex := 1

	if update.FullName != nil {
		userClauses = append(userClauses, fmt.Sprintf("full_name = $%d", argIndex))
		userArgs = append(userArgs, update.FullName)
		argIndex++
	}
	if update.VerificationDocURL != nil {
		userClauses = append(userClauses, fmt.Sprintf("verification_doc_url = $%d", argIndex))
		userArgs = append(userArgs, update.VerificationDocURL)
		argIndex++
	}

	if len(userClauses) > 0 {
		userClauses = append(userClauses, fmt.Sprintf("updated_at = $%d", argIndex))
		userArgs = append(userArgs, time.Now())
		argIndex++

		userArgs = append(userArgs, id)
		query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(userClauses, ", "), argIndex)
		if _, err := tx.ExecContext(ctx, query, userArgs...); err != nil {
			return err
		}
	}

	artistClauses := []string{}
	artistArgs := []interface{}{}
	argIndex = 1

	artistFields := map[string]*string{
		"stage_name":    update.StageName,
		"years_active":  update.YearsActive,
		"website_url":   update.WebsiteURL,
		"facebook_url":  update.FacebookURL,
		"twitter_url":   update.TwitterURL,
		"instagram_url": update.InstagramURL,
		"youtube_url":   update.YoutubeURL,
	}
	// Deterministic clause order keeps the generated SQL stable
	for _, col := range []string{"stage_name", "years_active", "website_url", "facebook_url", "twitter_url", "instagram_url", "youtube_url"} {
		if val := artistFields[col]; val != nil {
			artistClauses = append(artistClauses, fmt.Sprintf("%s = $%d", col, argIndex))
			artistArgs = append(artistArgs, val)
			argIndex++
		}
	}

	if len(artistClauses) > 0 {
		artistArgs = append(artistArgs, id)
		query := fmt.Sprintf("UPDATE artists SET %s WHERE user_id = $%d", strings.Join(artistClauses, ", "), argIndex)
		if _, err := tx.ExecContext(ctx, query, artistArgs...); err != nil {
			return err
		}
	}

	return tx.Commit()
}
