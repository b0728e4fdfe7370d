package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/artist/domain"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// ArtistHandler serves the public artist directory endpoints
type ArtistHandler struct {
	service *application.ArtistService
}

func NewArtistHandler(service *application.ArtistService) *ArtistHandler {
	return &ArtistHandler{service: service}
}

// ListArtists handles GET /api/artists
func (h *ArtistHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.ListArtists(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list artists")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

// GetArtist handles GET /api/artists/{id}
func (h *ArtistHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	profile, err := h.service.GetArtistProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			utils.WriteError(w, http.StatusNotFound, "artist not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}
