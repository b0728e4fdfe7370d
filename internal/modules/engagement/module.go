package engagement

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/application"
	persistence "github.com/mwesigwa/tunestream-backend/internal/modules/engagement/infrastructure/persistence/postgres"
	engagementHttp "github.com/mwesigwa/tunestream-backend/internal/modules/engagement/interfaces/http"
)

// Module represents the Engagement module
type Module struct {
	service *application.EngagementService
	handler *engagementHttp.EngagementHandler
}

// NewModule creates and initializes the Engagement module
func NewModule(db *sqlx.DB, historyRetention time.Duration) *Module {
	repo := persistence.NewEngagementRepository(db)
	service := application.NewEngagementService(repo)
	handler := engagementHttp.NewEngagementHandler(service, historyRetention)

	return &Module{service: service, handler: handler}
}

// Service returns the engagement service
func (m *Module) Service() *application.EngagementService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *engagementHttp.EngagementHandler {
	return m.handler
}
