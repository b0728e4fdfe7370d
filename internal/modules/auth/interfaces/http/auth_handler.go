package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/gateway/middleware"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/domain"
	fileApp "github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/application"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service        *application.AuthService
	fileService    *fileApp.FileService
	googleClientID string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *application.AuthService, fileService *fileApp.FileService, googleClientID string) *AuthHandler {
	return &AuthHandler{
		service:        service,
		fileService:    fileService,
		googleClientID: googleClientID,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if err == domain.ErrEmailTaken {
			utils.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, user)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			utils.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GoogleLogin handles POST /login/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req application.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.GoogleLogin(r.Context(), h.googleClientID, req)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req struct {
		FullName     *string `json:"full_name"`
		StageName    *string `json:"stage_name"`
		YearsActive  *string `json:"years_active"`
		WebsiteURL   *string `json:"website_url"`
		FacebookURL  *string `json:"facebook_url"`
		TwitterURL   *string `json:"twitter_url"`
		InstagramURL *string `json:"instagram_url"`
		YoutubeURL   *string `json:"youtube_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.ProfileUpdate{
		FullName:     req.FullName,
		StageName:    req.StageName,
		YearsActive:  req.YearsActive,
		WebsiteURL:   req.WebsiteURL,
		FacebookURL:  req.FacebookURL,
		TwitterURL:   req.TwitterURL,
		InstagramURL: req.InstagramURL,
		YoutubeURL:   req.YoutubeURL,
	}

	if err := h.service.UpdateProfile(r.Context(), userID, update); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UploadVerificationDoc handles POST /me/verification-doc. The document
// itself is opaque: only the storage reference is recorded.
func (h *AuthHandler) UploadVerificationDoc(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	url, _, err := h.fileService.Upload(r.Context(), file, header, "verification")
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to store document")
		return
	}

	if err := h.service.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{VerificationDocURL: &url}); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to record document")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"verification_doc_url": url})
}
