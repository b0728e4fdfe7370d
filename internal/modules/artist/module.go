package artist

import (
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/application"
	persistence "github.com/mwesigwa/tunestream-backend/internal/modules/artist/infrastructure/persistence/postgres"
	artistHttp "github.com/mwesigwa/tunestream-backend/internal/modules/artist/interfaces/http"
)

// Module represents the Artist directory module
type Module struct {
	service *application.ArtistService
	handler *artistHttp.ArtistHandler
}

// NewModule creates and initializes the Artist module
func NewModule(db *sqlx.DB) *Module {
	repo := persistence.NewArtistRepository(db)
	service := application.NewArtistService(repo)
	handler := artistHttp.NewArtistHandler(service)

	return &Module{service: service, handler: handler}
}

// Service returns the artist service
func (m *Module) Service() *application.ArtistService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *artistHttp.ArtistHandler {
	return m.handler
}
