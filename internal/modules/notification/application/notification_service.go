package application

import (
	"encoding/json"

	"github.com/google/uuid"
	ws "github.com/mwesigwa/tunestream-backend/internal/modules/notification/infrastructure/websocket"
)

// NotificationService pushes catalog events to connected clients
type NotificationService struct {
	hub *ws.Hub
}

// NewNotificationService creates a notification service backed by the hub
func NewNotificationService(hub *ws.Hub) *NotificationService {
	return &NotificationService{hub: hub}
}

type trackEvent struct {
	Type      string    `json:"type"`
	TrackID   uuid.UUID `json:"track_id"`
	Title     string    `json:"title"`
	StageName string    `json:"stage_name"`
}

type processedEvent struct {
	Type    string    `json:"type"`
	TrackID uuid.UUID `json:"track_id"`
	Status  string    `json:"status"`
}

// NotifyTrackProcessed tells the uploading artist that ingestion finished
func (s *NotificationService) NotifyTrackProcessed(artistID, trackID uuid.UUID, ok bool) {
	status := "completed"
	if !ok {
		status = "failed"
	}
	payload, err := json.Marshal(processedEvent{
		Type:    "track_processed",
		TrackID: trackID,
		Status:  status,
	})
	if err != nil {
		return
	}
	s.hub.SendToUser(artistID, payload)
}

// NotifyNewTrack broadcasts a new public upload to all connected clients
func (s *NotificationService) NotifyNewTrack(trackID uuid.UUID, title, stageName string) {
	payload, err := json.Marshal(trackEvent{
		Type:      "new_track",
		TrackID:   trackID,
		Title:     title,
		StageName: stageName,
	})
	if err != nil {
		return
	}
	s.hub.BroadcastMessage(payload)
}
