package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
	fileApp "github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/application"
	notificationApp "github.com/mwesigwa/tunestream-backend/internal/modules/notification/application"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
	"github.com/redis/go-redis/v9"
)

const listCacheTTL = 10 * time.Minute

// CatalogHandler handles catalog HTTP requests
type CatalogHandler struct {
	service             *application.CatalogService
	fileService         *fileApp.FileService
	notificationService *notificationApp.NotificationService
	redisClient         *redis.Client
}

func NewCatalogHandler(service *application.CatalogService, fileService *fileApp.FileService, notificationService *notificationApp.NotificationService, redisClient *redis.Client) *CatalogHandler {
	return &CatalogHandler{
		service:             service,
		fileService:         fileService,
		notificationService: notificationService,
		redisClient:         redisClient,
	}
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

func listCacheKey(page, pageSize int) string {
	return fmt.Sprintf("tracks:page:%d:size:%d", page, pageSize)
}

// ListTracks handles GET /tracks. Unfiltered pages are cached in redis.
func (h *CatalogHandler) ListTracks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	genre := r.URL.Query().Get("genre")
	search := r.URL.Query().Get("search")

	cacheable := h.redisClient != nil && genre == "" && search == ""
	if cacheable {
		if val, err := h.redisClient.Get(r.Context(), listCacheKey(page, pageSize)).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(val))
			return
		}
	}

	tracks, pagination, err := h.service.ListTracks(r.Context(), page, pageSize, genre, search)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list tracks")
		return
	}

	resp := TrackListResponse{Tracks: tracks, Pagination: pagination}

	if cacheable {
		if jsonBytes, err := json.Marshal(resp); err == nil {
			h.redisClient.Set(context.Background(), listCacheKey(page, pageSize), jsonBytes, listCacheTTL)
		}
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetTrack handles GET /tracks/{id}
func (h *CatalogHandler) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	track, err := h.service.GetTrack(r.Context(), id)
	if err != nil {
		if err == domain.ErrTrackNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load track")
		return
	}

	utils.WriteJSON(w, http.StatusOK, track)
}

// UploadTrack handles POST /tracks. Artists only. The audio blob and an
// optional thumbnail go to blob storage; the track row and its genre
// associations are committed atomically by the repository.
func (h *CatalogHandler) UploadTrack(w http.ResponseWriter, r *http.Request) {
	artistID, role, ok := identity(r)
	if !ok || role != "artist" {
		utils.WriteError(w, http.StatusForbidden, "artist account required")
		return
	}

	if err := r.ParseMultipartForm(100 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer audioFile.Close()

	audioURL, _, err := h.fileService.Upload(r.Context(), audioFile, audioHeader, "audio")
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to store audio")
		return
	}

	track := &domain.AudioTrack{
		ArtistID:  artistID,
		Title:     r.FormValue("title"),
		AudioURL:  audioURL,
		Format:    formatFromFilename(audioHeader.Filename, "mp3"),
		SizeBytes: audioHeader.Size,
	}

	if lyrics := r.FormValue("lyrics"); lyrics != "" {
		track.Lyrics = &lyrics
	}
	if dur, err := strconv.Atoi(r.FormValue("duration_seconds")); err == nil {
		track.DurationSeconds = dur
	}
	if vis := r.FormValue("visibility"); vis != "" {
		track.Visibility = domain.Visibility(vis)
	}
	if albumStr := r.FormValue("album_id"); albumStr != "" {
		if albumID, err := uuid.Parse(albumStr); err == nil {
			track.AlbumID = &albumID
		}
	}

	// Thumbnails are normalized to a bounded JPEG before storage
	if thumbFile, _, err := r.FormFile("thumbnail"); err == nil {
		defer thumbFile.Close()

		src, err := imaging.Decode(thumbFile)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "invalid thumbnail image")
			return
		}
		dst := imaging.Fit(src, 500, 500, imaging.Lanczos)
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, dst, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "failed to encode thumbnail")
			return
		}

		key := fmt.Sprintf("thumbnails/%s.jpg", uuid.New().String())
		thumbURL, err := h.fileService.UploadWithKey(r.Context(), buf, key, "image/jpeg")
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "failed to store thumbnail")
			return
		}
		track.ThumbnailURL = &thumbURL
	}

	genreIDs, err := parseGenreIDs(r.FormValue("genre_ids"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid genre id list")
		return
	}

	if err := h.service.UploadTrack(r.Context(), track, genreIDs); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.invalidateListCache()

	if track.Visibility == domain.VisibilityPublic && h.notificationService != nil {
		h.notificationService.NotifyNewTrack(track.ID, track.Title, track.StageName)
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"id": track.ID.String()})
}

// DeleteTrack handles DELETE /tracks/{id}
func (h *CatalogHandler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	artistID, _, ok := identity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	fileURLs, err := h.service.DeleteTrack(r.Context(), id, artistID)
	if err != nil {
		if err == domain.ErrTrackNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete track")
		return
	}

	h.cleanupBlobs(r.Context(), fileURLs)
	h.invalidateListCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateTrackStatus handles PATCH /admin/tracks/{id}/status. The ingestion
// pipeline reports its outcome here; the track's owner is told over their
// websocket connection.
func (h *CatalogHandler) UpdateTrackStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	var req struct {
		Ok bool `json:"ok"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artistID, err := h.service.MarkTrackProcessed(r.Context(), id, req.Ok)
	if err != nil {
		if err == domain.ErrTrackNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	if h.notificationService != nil {
		h.notificationService.NotifyTrackProcessed(artistID, id, req.Ok)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// StreamTrack handles GET /tracks/{id}/stream. Returns a short-lived URL
// for playback, or one that forces a download when ?download=1 is set.
func (h *CatalogHandler) StreamTrack(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	track, err := h.service.GetTrack(r.Context(), id)
	if err != nil {
		if err == domain.ErrTrackNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load track")
		return
	}

	key, err := h.fileService.KeyFromURL(track.AudioURL)
	if err != nil {
		// Not under managed storage, hand the stored URL back as-is
		utils.WriteJSON(w, http.StatusOK, map[string]string{"url": track.AudioURL})
		return
	}

	const expiry = time.Hour
	var signed string
	if r.URL.Query().Get("download") == "1" {
		filename := fmt.Sprintf("%s.%s", track.Title, track.Format)
		signed, err = h.fileService.DownloadURL(r.Context(), key, filename, expiry)
	} else {
		signed, err = h.fileService.StreamURL(r.Context(), key, expiry)
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to sign url")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": signed})
}

// ListVideos handles GET /videos
func (h *CatalogHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	videos, pagination, err := h.service.ListVideos(r.Context(), page, pageSize)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, VideoListResponse{Videos: videos, Pagination: pagination})
}

// GetVideo handles GET /videos/{id}
func (h *CatalogHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		if err == domain.ErrVideoNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load video")
		return
	}

	utils.WriteJSON(w, http.StatusOK, video)
}

// UploadVideo handles POST /videos. Artists only.
func (h *CatalogHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	artistID, role, ok := identity(r)
	if !ok || role != "artist" {
		utils.WriteError(w, http.StatusForbidden, "artist account required")
		return
	}

	if err := r.ParseMultipartForm(500 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer videoFile.Close()

	videoURL, _, err := h.fileService.Upload(r.Context(), videoFile, videoHeader, "video")
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to store video")
		return
	}

	video := &domain.Video{
		ArtistID:  artistID,
		Title:     r.FormValue("title"),
		VideoURL:  videoURL,
		Format:    formatFromFilename(videoHeader.Filename, "mp4"),
		SizeBytes: videoHeader.Size,
	}
	if desc := r.FormValue("description"); desc != "" {
		video.Description = &desc
	}
	if dur, err := strconv.Atoi(r.FormValue("duration_seconds")); err == nil {
		video.DurationSeconds = dur
	}
	if vis := r.FormValue("visibility"); vis != "" {
		video.Visibility = domain.Visibility(vis)
	}

	if err := h.service.UploadVideo(r.Context(), video); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"id": video.ID.String()})
}

// DeleteVideo handles DELETE /videos/{id}
func (h *CatalogHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	artistID, _, ok := identity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	fileURLs, err := h.service.DeleteVideo(r.Context(), id, artistID)
	if err != nil {
		if err == domain.ErrVideoNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	h.cleanupBlobs(r.Context(), fileURLs)
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListGenres handles GET /genres
func (h *CatalogHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list genres")
		return
	}
	utils.WriteJSON(w, http.StatusOK, genres)
}

// CreateGenre handles POST /genres. Admin only.
func (h *CatalogHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identity(r)
	if !ok || role != "admin" {
		utils.WriteError(w, http.StatusForbidden, "admin account required")
		return
	}

	var genre domain.Genre
	if err := json.NewDecoder(r.Body).Decode(&genre); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.CreateGenre(r.Context(), &genre); err != nil {
		if err == domain.ErrGenreExists {
			utils.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, genre)
}

// CreateAlbum handles POST /albums. Artists only.
func (h *CatalogHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	artistID, role, ok := identity(r)
	if !ok || role != "artist" {
		utils.WriteError(w, http.StatusForbidden, "artist account required")
		return
	}

	var album domain.Album
	if err := json.NewDecoder(r.Body).Decode(&album); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	album.ArtistID = artistID

	if err := h.service.CreateAlbum(r.Context(), &album); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, album)
}

// ListMyAlbums handles GET /albums
func (h *CatalogHandler) ListMyAlbums(w http.ResponseWriter, r *http.Request) {
	artistID, _, ok := identity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	albums, err := h.service.ListAlbums(r.Context(), artistID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list albums")
		return
	}
	utils.WriteJSON(w, http.StatusOK, albums)
}

// DeleteAlbum handles DELETE /albums/{id}
func (h *CatalogHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	artistID, _, ok := identity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	if err := h.service.DeleteAlbum(r.Context(), id, artistID); err != nil {
		if err == domain.ErrAlbumNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete album")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// cleanupBlobs removes stored files after the owning row is gone. Failures
// are ignored: the row is already deleted and orphaned blobs are harmless.
func (h *CatalogHandler) cleanupBlobs(ctx context.Context, fileURLs []string) {
	for _, fileURL := range fileURLs {
		key, err := h.fileService.KeyFromURL(fileURL)
		if err != nil {
			continue
		}
		_ = h.fileService.Delete(ctx, key)
	}
}

func (h *CatalogHandler) invalidateListCache() {
	if h.redisClient == nil {
		return
	}
	// The first default page is the hot one; targeted invalidation keeps
	// this cheap and the TTL bounds staleness elsewhere.
	h.redisClient.Del(context.Background(), listCacheKey(0, 0), listCacheKey(1, 20))
}

func identity(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := r.Context().Value(middleware.ContextKeyRole).(string)
	return userID, role, true
}

func parseGenreIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatFromFilename(filename, fallback string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		return strings.ToLower(filename[idx+1:])
	}
	return fallback
}
