package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/playlist/domain"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// PlaylistHandler serves playlist endpoints
type PlaylistHandler struct {
	service *application.PlaylistService
}

func NewPlaylistHandler(service *application.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// CreatePlaylist handles POST /api/playlists
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string            `json:"name"`
		Description *string           `json:"description"`
		Visibility  domain.Visibility `json:"visibility"`
		TrackIDs    []uuid.UUID       `json:"track_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), userID, req.Name, req.Description, req.Visibility, req.TrackIDs)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, playlist)
}

// GetPlaylist handles GET /api/playlists/{id}
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	var requester *uuid.UUID
	if userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID); ok {
		requester = &userID
	}

	playlist, err := h.service.GetPlaylist(r.Context(), id, requester)
	if err != nil {
		if errors.Is(err, domain.ErrPlaylistNotFound) {
			utils.WriteError(w, http.StatusNotFound, "playlist not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load playlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, playlist)
}

// ListMyPlaylists handles GET /api/playlists
func (h *PlaylistHandler) ListMyPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	playlists, err := h.service.ListUserPlaylists(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list playlists")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

// AddTrack handles POST /api/playlists/{id}/tracks
func (h *PlaylistHandler) AddTrack(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	playlistID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	var req struct {
		TrackID  uuid.UUID `json:"track_id"`
		Position *int      `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	if err := h.service.AddTrack(r.Context(), playlistID, userID, req.TrackID, position); err != nil {
		h.writePlaylistError(w, err, "failed to add track")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveTrack handles DELETE /api/playlists/{id}/tracks/{trackId}
func (h *PlaylistHandler) RemoveTrack(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	playlistID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	trackID, err := uuid.Parse(r.PathValue("trackId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	if err := h.service.RemoveTrack(r.Context(), playlistID, userID, trackID); err != nil {
		h.writePlaylistError(w, err, "failed to remove track")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// DeletePlaylist handles DELETE /api/playlists/{id}
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	playlistID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), playlistID, userID); err != nil {
		h.writePlaylistError(w, err, "failed to delete playlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PlaylistHandler) writePlaylistError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrPlaylistNotFound):
		utils.WriteError(w, http.StatusNotFound, "playlist not found")
	case errors.Is(err, domain.ErrForbidden):
		utils.WriteError(w, http.StatusForbidden, "not the owner of this playlist")
	case errors.Is(err, domain.ErrTrackNotInList):
		utils.WriteError(w, http.StatusNotFound, "track not in playlist")
	case errors.Is(err, domain.ErrTrackAlreadyIn):
		utils.WriteError(w, http.StatusConflict, "track already in playlist")
	default:
		utils.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
