package contact

import (
	"github.com/jmoiron/sqlx"
	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/application"
	persistence "github.com/mwesigwa/tunestream-backend/internal/modules/contact/infrastructure/persistence/postgres"
	contactHttp "github.com/mwesigwa/tunestream-backend/internal/modules/contact/interfaces/http"
)

// Module represents the Contact module
type Module struct {
	service *application.ContactService
	handler *contactHttp.ContactHandler
}

// NewModule creates and initializes the Contact module
func NewModule(db *sqlx.DB) *Module {
	repo := persistence.NewContactRepository(db)
	service := application.NewContactService(repo)
	handler := contactHttp.NewContactHandler(service)

	return &Module{service: service, handler: handler}
}

// Service returns the contact service
func (m *Module) Service() *application.ContactService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *contactHttp.ContactHandler {
	return m.handler
}
