package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/engagement/domain"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// EngagementHandler serves play, download and favorite endpoints
type EngagementHandler struct {
	service   *application.EngagementService
	retention time.Duration
}

func NewEngagementHandler(service *application.EngagementService, retention time.Duration) *EngagementHandler {
	return &EngagementHandler{service: service, retention: retention}
}

// RecordPlay handles POST /tracks/{id}/play. Works for anonymous
// listeners; a logged-in user is attached to the history row.
func (h *EngagementHandler) RecordPlay(w http.ResponseWriter, r *http.Request) {
	trackID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	if err := h.service.RecordPlay(r.Context(), trackID, optionalUserID(r), clientIP(r)); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			utils.WriteError(w, http.StatusNotFound, "track not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to record play")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// RecordView handles POST /videos/{id}/view
func (h *EngagementHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	if err := h.service.RecordView(r.Context(), videoID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			utils.WriteError(w, http.StatusNotFound, "video not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to record view")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// RecordDownload handles POST /tracks/{id}/download and
// POST /videos/{id}/download.
func (h *EngagementHandler) RecordDownload(itemType domain.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "invalid item id")
			return
		}

		if err := h.service.RecordDownload(r.Context(), itemID, itemType, optionalUserID(r), clientIP(r)); err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				utils.WriteError(w, http.StatusNotFound, "item not found")
				return
			}
			utils.WriteError(w, http.StatusInternalServerError, "failed to record download")
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	}
}

// AddFavorite handles POST /favorites
func (h *EngagementHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		ItemID   uuid.UUID       `json:"item_id"`
		ItemType domain.ItemType `json:"item_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.AddFavorite(r.Context(), userID, req.ItemID, req.ItemType); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidItemType):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyFavorited):
			utils.WriteError(w, http.StatusConflict, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to add favorite")
		}
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]string{"status": "favorited"})
}

// RemoveFavorite handles DELETE /favorites/{type}/{id}
func (h *EngagementHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	itemType := domain.ItemType(r.PathValue("type"))

	if err := h.service.RemoveFavorite(r.Context(), userID, itemID, itemType); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidItemType):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrFavoriteNotFound):
			utils.WriteError(w, http.StatusNotFound, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to remove favorite")
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListFavorites handles GET /favorites
func (h *EngagementHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	favorites, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

// PurgeHistory handles POST /admin/history/purge. Admin only; trims play
// history older than the configured retention window, or an explicit
// older_than duration from the query string.
func (h *EngagementHandler) PurgeHistory(w http.ResponseWriter, r *http.Request) {
	window := h.retention
	if raw := r.URL.Query().Get("older_than"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			utils.WriteError(w, http.StatusBadRequest, "invalid older_than duration")
			return
		}
		window = parsed
	}

	purged, err := h.service.PurgeHistory(r.Context(), window)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to purge history")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"purged": purged})
}

func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func optionalUserID(r *http.Request) *uuid.UUID {
	if userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID); ok {
		return &userID
	}
	return nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// Only the first hop is the client; the rest are proxies
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
