package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/domain"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/infrastructure/jwt"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// DTOs for registration and login
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	StageName   string  `json:"stage_name"`
	YearsActive *string `json:"years_active"`
	WebsiteURL  *string `json:"website_url"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// AuthService provides authentication operations
type AuthService struct {
	repo                 domain.UserRepository
	jwtSecret            string
	jwtExpiry            time.Duration
	googleTokenValidator func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)
	now                  func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(repo domain.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		repo:                 repo,
		jwtSecret:            jwtSecret,
		jwtExpiry:            jwtExpiry,
		googleTokenValidator: idtoken.Validate,
		now:                  time.Now,
	}
}

// Register creates a new account. Artist registrations also create the
// artist profile row; the repository makes the pair atomic. A duplicate
// email surfaces as domain.ErrEmailTaken (registration reveals existing
// emails, login does not).
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if req.FullName == "" {
		return nil, errors.New("full name is required")
	}

	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleListener
	}
	if role != domain.RoleListener && role != domain.RoleArtist {
		return nil, errors.New("invalid role")
	}

	var artist *domain.ArtistProfile
	if role == domain.RoleArtist {
		if req.StageName == "" {
			return nil, errors.New("stage name is required for artist accounts")
		}
		artist = &domain.ArtistProfile{
			StageName:   req.StageName,
			YearsActive: req.YearsActive,
			WebsiteURL:  req.WebsiteURL,
		}
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPass),
		FullName:     req.FullName,
		Role:         role,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, user, artist); err != nil {
		return nil, err
	}
	user.Artist = artist

	return user, nil
}

// Login authenticates a user and returns a JWT token. Unknown emails and
// wrong passwords both map to ErrInvalidCredentials so the response does
// not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", errors.New("missing email or password")
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		return "", err
	}

	return jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Email, string(user.Role))
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) error {
	return s.repo.UpdateProfile(ctx, id, update)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return jwt.ValidateToken(tokenStr, s.jwtSecret)
}

// GoogleLogin verifies a Google ID token and issues an application JWT,
// provisioning a listener account the first time an email is seen.
func (s *AuthService) GoogleLogin(ctx context.Context, googleClientID string, req GoogleLoginRequest) (string, error) {
	validate := s.googleTokenValidator
	if validate == nil {
		validate = idtoken.Validate
	}

	payload, err := validate(ctx, req.Token, googleClientID)
	if err != nil {
		return "", errors.New("invalid google token")
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return "", errors.New("email not provided by google")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err != domain.ErrUserNotFound {
			return "", err
		}
		user = &domain.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: "", // No password for OAuth accounts
			FullName:     name,
			Role:         domain.RoleListener,
			CreatedAt:    s.now(),
			UpdatedAt:    s.now(),
		}
		if createErr := s.repo.Create(ctx, user, nil); createErr != nil {
			return "", createErr
		}
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		return "", err
	}

	return jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Email, string(user.Role))
}
