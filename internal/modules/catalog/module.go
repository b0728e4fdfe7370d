package catalog

import (
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/application"
	persistence "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/infrastructure/persistence/postgres"
	catalogHttp "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/interfaces/http"
	fileApp "github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/application"
	notificationApp "github.com/mwesigwa/tunestream-backend/internal/modules/notification/application"
	"github.com/redis/go-redis/v9"
)

// Module represents the Catalog module
type Module struct {
	tracks  *persistence.PgTrackRepository
	service *application.CatalogService
	handler *catalogHttp.CatalogHandler
}

// NewModule creates and initializes the Catalog module
func NewModule(
	db *sqlx.DB,
	fileService *fileApp.FileService,
	notificationService *notificationApp.NotificationService,
	redisClient *redis.Client,
) *Module {
	tracks := persistence.NewTrackRepository(db)
	videos := persistence.NewVideoRepository(db)
	genres := persistence.NewGenreRepository(db)
	albums := persistence.NewAlbumRepository(db)

	service := application.NewCatalogService(tracks, videos, genres, albums)
	handler := catalogHttp.NewCatalogHandler(service, fileService, notificationService, redisClient)

	return &Module{
		tracks:  tracks,
		service: service,
		handler: handler,
	}
}

// Service returns the catalog service
func (m *Module) Service() *application.CatalogService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *catalogHttp.CatalogHandler {
	return m.handler
}
