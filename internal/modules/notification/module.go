package notification

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/notification/application"
	ws "github.com/mwesigwa/tunestream-backend/internal/modules/notification/infrastructure/websocket"
)

// Module represents the notification module
type Module struct {
	hub     *ws.Hub
	service *application.NotificationService
}

// NewModule creates the notification module and starts the hub goroutine
func NewModule() *Module {
	hub := ws.NewHub()
	go hub.Run()

	return &Module{
		hub:     hub,
		service: application.NewNotificationService(hub),
	}
}

// Service returns the notification service
func (m *Module) Service() *application.NotificationService {
	return m.service
}

// Subscribe upgrades the request to a websocket connection for the user
func (m *Module) Subscribe(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	ws.ServeWs(m.hub, w, r, userID)
}

// Shutdown stops the hub and disconnects all clients
func (m *Module) Shutdown() {
	m.hub.Stop()
}
