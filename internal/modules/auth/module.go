package auth

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/infrastructure/persistence/postgres"
	auth_http "github.com/mwesigwa/tunestream-backend/internal/modules/auth/interfaces/http"
	fileApp "github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/application"
)

// Module represents the Auth module
type Module struct {
	service *application.AuthService
	handler *auth_http.AuthHandler
}

// NewModule creates and initializes the Auth module
func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, fileService *fileApp.FileService, googleClientID string) *Module {
	repository := postgres.NewUserRepository(db)
	service := application.NewAuthService(repository, jwtSecret, jwtExpiry)
	handler := auth_http.NewAuthHandler(service, fileService, googleClientID)

	return &Module{
		service: service,
		handler: handler,
	}
}

// Service returns the auth service for use by the gateway layer
func (m *Module) Service() *application.AuthService {
	return m.service
}

// HTTPHandler returns the HTTP handler for the auth module
func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
