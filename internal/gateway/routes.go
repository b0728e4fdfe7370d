package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	artist_http "github.com/mwesigwa/tunestream-backend/internal/modules/artist/interfaces/http"
	auth_http "github.com/mwesigwa/tunestream-backend/internal/modules/auth/interfaces/http"
	catalog_http "github.com/mwesigwa/tunestream-backend/internal/modules/catalog/interfaces/http"
	contact_http "github.com/mwesigwa/tunestream-backend/internal/modules/contact/interfaces/http"
	engagementDomain "github.com/mwesigwa/tunestream-backend/internal/modules/engagement/domain"
	engagement_http "github.com/mwesigwa/tunestream-backend/internal/modules/engagement/interfaces/http"
	"github.com/mwesigwa/tunestream-backend/internal/modules/notification"
	playlist_http "github.com/mwesigwa/tunestream-backend/internal/modules/playlist/interfaces/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler        *auth_http.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleWare
	CatalogHandler     *catalog_http.CatalogHandler
	ArtistHandler      *artist_http.ArtistHandler
	EngagementHandler  *engagement_http.EngagementHandler
	PlaylistHandler    *playlist_http.PlaylistHandler
	ContactHandler     *contact_http.ContactHandler
	NotificationModule *notification.Module
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Auth Routes
	mux.HandleFunc("POST /register", config.AuthHandler.Register)
	mux.HandleFunc("POST /login", config.AuthHandler.Login)
	mux.HandleFunc("POST /login/google", config.AuthHandler.GoogleLogin)
	mux.Handle("GET /me", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.AuthHandler.Me)))
	mux.Handle("PATCH /me", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.AuthHandler.UpdateProfile)))
	mux.Handle("POST /me/verification-doc", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.AuthHandler.UploadVerificationDoc)))

	// Catalog Routes
	mux.HandleFunc("GET /tracks", config.CatalogHandler.ListTracks)
	mux.HandleFunc("GET /tracks/{id}", config.CatalogHandler.GetTrack)
	mux.HandleFunc("GET /tracks/{id}/stream", config.CatalogHandler.StreamTrack)
	mux.Handle("POST /tracks", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.UploadTrack)))
	mux.Handle("DELETE /tracks/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.DeleteTrack)))
	mux.HandleFunc("GET /videos", config.CatalogHandler.ListVideos)
	mux.HandleFunc("GET /videos/{id}", config.CatalogHandler.GetVideo)
	mux.Handle("POST /videos", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.UploadVideo)))
	mux.Handle("DELETE /videos/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.DeleteVideo)))
	mux.HandleFunc("GET /genres", config.CatalogHandler.ListGenres)
	mux.Handle("POST /genres", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.CreateGenre)))
	mux.Handle("POST /albums", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.CreateAlbum)))
	mux.Handle("GET /albums", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.ListMyAlbums)))
	mux.Handle("DELETE /albums/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.CatalogHandler.DeleteAlbum)))
	mux.Handle("PATCH /admin/tracks/{id}/status", config.AuthMiddleware.RequireRole("admin", http.HandlerFunc(config.CatalogHandler.UpdateTrackStatus)))

	// Artist Directory Routes
	mux.HandleFunc("GET /artists", config.ArtistHandler.ListArtists)
	mux.HandleFunc("GET /artists/{id}", config.ArtistHandler.GetArtist)

	// Engagement Routes
	mux.Handle("POST /tracks/{id}/play", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.EngagementHandler.RecordPlay)))
	mux.Handle("POST /tracks/{id}/download", config.AuthMiddleware.FlexibleAuth(config.EngagementHandler.RecordDownload(engagementDomain.ItemAudio)))
	mux.Handle("POST /videos/{id}/download", config.AuthMiddleware.FlexibleAuth(config.EngagementHandler.RecordDownload(engagementDomain.ItemVideo)))
	mux.HandleFunc("POST /videos/{id}/view", config.EngagementHandler.RecordView)
	mux.Handle("GET /favorites", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.EngagementHandler.ListFavorites)))
	mux.Handle("POST /favorites", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.EngagementHandler.AddFavorite)))
	mux.Handle("DELETE /favorites/{type}/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.EngagementHandler.RemoveFavorite)))
	mux.Handle("POST /admin/history/purge", config.AuthMiddleware.RequireRole("admin", http.HandlerFunc(config.EngagementHandler.PurgeHistory)))

	// Playlist Routes
	mux.Handle("POST /playlists", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PlaylistHandler.CreatePlaylist)))
	mux.Handle("GET /playlists", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PlaylistHandler.ListMyPlaylists)))
	mux.Handle("GET /playlists/{id}", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.PlaylistHandler.GetPlaylist)))
	mux.Handle("DELETE /playlists/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PlaylistHandler.DeletePlaylist)))
	mux.Handle("POST /playlists/{id}/tracks", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PlaylistHandler.AddTrack)))
	mux.Handle("DELETE /playlists/{id}/tracks/{trackId}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.PlaylistHandler.RemoveTrack)))

	// Contact & Newsletter Routes
	mux.HandleFunc("POST /contact", config.ContactHandler.SubmitMessage)
	mux.Handle("GET /contact/messages", config.AuthMiddleware.RequireRole("admin", http.HandlerFunc(config.ContactHandler.ListMessages)))
	mux.HandleFunc("POST /newsletter/subscribe", config.ContactHandler.Subscribe)
	mux.HandleFunc("POST /newsletter/unsubscribe", config.ContactHandler.Unsubscribe)

	// Notification Routes
	mux.Handle("GET /ws", config.AuthMiddleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
		if !ok {
			http.Error(w, `{"error": "missing identity"}`, http.StatusUnauthorized)
			return
		}
		config.NotificationModule.Subscribe(w, r, userID)
	})))

	return mux
}
