package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/domain"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type fakeUserRepo struct {
	users       map[string]*domain.User
	lastCreated *domain.User
	lastArtist  *domain.ArtistProfile
	createErr   error
	lastLoginAt *time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User, artist *domain.ArtistProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	f.users[user.Email] = user
	f.lastCreated = user
	f.lastArtist = artist
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.lastLoginAt = &at
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) error {
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role domain.UserRole) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Seeded User",
		Role:         role,
	}
	repo.users[email] = user
	return user
}

func TestRegister_Listener(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleListener, user.Role)
	assert.Nil(t, repo.lastArtist)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_ArtistRequiresStageName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "artist@example.com",
		Password: "password123",
		FullName: "An Artist",
		Role:     "artist",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage name")
}

func TestRegister_ArtistCreatesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "artist@example.com",
		Password:  "password123",
		FullName:  "An Artist",
		Role:      "artist",
		StageName: "Stage",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastArtist)
	assert.Equal(t, "Stage", repo.lastArtist.StageName)
	assert.Equal(t, domain.RoleArtist, user.Role)
}

func TestRegister_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	ctx := context.Background()

	cases := []RegisterRequest{
		{Password: "password123", FullName: "X"},                                        // missing email
		{Email: "bad-email", Password: "password123", FullName: "X"},                    // invalid email
		{Email: "a@b.com", Password: "short", FullName: "X"},                            // short password
		{Email: "a@b.com", Password: "password123"},                                     // missing name
		{Email: "a@b.com", Password: "password123", FullName: "X", Role: "superuser"},   // bad role
		{Email: "a@b.com", Password: "password123", FullName: "X", Role: "admin"},       // admin not self-service
	}
	for _, req := range cases {
		_, err := svc.Register(ctx, req)
		assert.Error(t, err)
	}
}

func TestRegister_DuplicateEmailSurfaces(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@example.com", "password123", domain.RoleListener)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "Dup",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "password123", domain.RoleListener)
	svc := NewAuthService(repo, "secret", time.Hour)

	token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, repo.lastLoginAt)

	claims, err := jwt.ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "listener", claims.Role)
}

func TestLogin_UniformErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "password123", domain.RoleListener)
	svc := NewAuthService(repo, "secret", time.Hour)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
	_, errWrongPass := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestGoogleLogin_ProvisionsListenerOnFirstSight(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	svc.googleTokenValidator = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{
			"email": "google-user@example.com",
			"name":  "Google User",
		}}, nil
	}

	token, err := svc.GoogleLogin(context.Background(), "client-id", GoogleLoginRequest{Token: "google-token"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NotNil(t, repo.lastCreated)
	assert.Equal(t, domain.RoleListener, repo.lastCreated.Role)
	assert.Empty(t, repo.lastCreated.PasswordHash)

	// Second login reuses the account
	repo.lastCreated = nil
	_, err = svc.GoogleLogin(context.Background(), "client-id", GoogleLoginRequest{Token: "google-token"})
	require.NoError(t, err)
	assert.Nil(t, repo.lastCreated)
}
