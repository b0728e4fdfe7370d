package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/domain"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// ContactHandler serves the contact form and newsletter endpoints
type ContactHandler struct {
	service *application.ContactService
}

func NewContactHandler(service *application.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitMessage handles POST /api/contact
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Subject *string `json:"subject"`
		Message string  `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.service.SubmitMessage(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, msg)
}

// ListMessages handles GET /api/admin/contact-messages
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, total, err := h.service.ListMessages(r.Context(), limit, offset)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"messages": messages, "total": total})
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			utils.WriteError(w, http.StatusConflict, "email already subscribed")
			return
		}
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles POST /api/newsletter/unsubscribe
func (h *ContactHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotSubscribed) {
			utils.WriteError(w, http.StatusNotFound, "email not subscribed")
			return
		}
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}
