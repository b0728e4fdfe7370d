package playlist

import (
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/application"
	persistence "github.com/mwesigwa/tunestream-backend/internal/modules/playlist/infrastructure/persistence/postgres"
	playlistHttp "github.com/mwesigwa/tunestream-backend/internal/modules/playlist/interfaces/http"
)

// Module represents the Playlist module
type Module struct {
	service *application.PlaylistService
	handler *playlistHttp.PlaylistHandler
}

// NewModule creates and initializes the Playlist module
func NewModule(db *sqlx.DB) *Module {
	repo := persistence.NewPlaylistRepository(db)
	service := application.NewPlaylistService(repo)
	handler := playlistHttp.NewPlaylistHandler(service)

	return &Module{service: service, handler: handler}
}

// Service returns the playlist service
func (m *Module) Service() *application.PlaylistService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *playlistHttp.PlaylistHandler {
	return m.handler
}
