package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hszk-dev/vidcatalog/internal/admin"
	"github.com/hszk-dev/vidcatalog/internal/api/middleware"
	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/usecase"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

type LocaleEntryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

type MetadataResponse struct {
	VideoKey  string                        `json:"videoKey"`
	Locales   map[string]LocaleEntryPayload `json:"locales"`
	CreatedAt string                        `json:"createdAt"`
	UpdatedAt string                        `json:"updatedAt"`
}

type PutMetadataRequest struct {
	Locale      string `json:"locale" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	CoverURL    string `json:"coverUrl"`
}

type UploadCoverRequest struct {
	Locale      string `json:"locale" validate:"required"`
	Image       string `json:"image" validate:"required"`
	ContentType string `json:"contentType"`
}

type UploadCoverResponse struct {
	CoverURL string `json:"coverUrl"`
}

type PresignUploadRequest struct {
	Key         string `json:"key" validate:"required"`
	ContentType string `json:"contentType"`
	Expires     int    `json:"expires" validate:"min=0"`
}

type PresignUploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

type DeleteVideoRequest struct {
	Key string `json:"key" validate:"required"`
}

// AdminHandler serves the authenticated management endpoints.
type AdminHandler struct {
	sessions *admin.SessionManager
	metadata usecase.MetadataService
	playback usecase.PlaybackService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions *admin.SessionManager, metadata usecase.MetadataService, playback usecase.PlaybackService) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		metadata: metadata,
		playback: playback,
		validate: validator.New(),
	}
}

// Login handles POST /v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_password", "Password is required")
		return
	}

	token, expiry, ok := h.sessions.Login(req.Password)
	if !ok {
		Error(w, http.StatusUnauthorized, "invalid_credentials", "Wrong password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	JSON(w, http.StatusOK, AuthResponse{Authenticated: true})
}

// Logout handles POST /v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	JSON(w, http.StatusOK, AuthResponse{Authenticated: false})
}

// Auth handles GET /v1/admin/auth
func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		authenticated = h.sessions.Validate(cookie.Value)
	}
	JSON(w, http.StatusOK, AuthResponse{Authenticated: authenticated})
}

// GetMetadata handles GET /v1/admin/videos/{key}/metadata
func (h *AdminHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	record, err := h.metadata.GetMetadata(r.Context(), key)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, toMetadataResponse(record))
}

// PutMetadata handles PUT /v1/admin/videos/{key}/metadata
func (h *AdminHandler) PutMetadata(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	var req PutMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_metadata", err.Error())
		return
	}

	record, err := h.metadata.UpsertMetadata(r.Context(), usecase.UpsertMetadataInput{
		VideoKey:    key,
		Locale:      req.Locale,
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, toMetadataResponse(record))
}

// UploadCover handles POST /v1/admin/videos/{key}/cover
func (h *AdminHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	key, ok := videoKeyParam(r)
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	var req UploadCoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_cover", err.Error())
		return
	}

	coverURL, err := h.metadata.UploadCover(r.Context(), usecase.UploadCoverInput{
		VideoKey:    key,
		Locale:      req.Locale,
		Data:        req.Image,
		ContentType: req.ContentType,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, UploadCoverResponse{CoverURL: coverURL})
}

// PresignUpload handles POST /v1/admin/videos/presign-upload
func (h *AdminHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_upload", err.Error())
		return
	}

	output, err := h.playback.PresignUpload(r.Context(), usecase.PresignUploadInput{
		Key:         req.Key,
		ContentType: req.ContentType,
		Expires:     req.Expires,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, PresignUploadResponse{
		URL:         output.URL,
		Key:         output.Key,
		ContentType: output.ContentType,
	})
}

// DeleteVideo handles POST /v1/admin/videos/delete
func (h *AdminHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	var req DeleteVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	if err := h.playback.DeleteVideo(r.Context(), req.Key); err != nil {
		ServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toMetadataResponse(record *model.VideoMetadata) MetadataResponse {
	locales := make(map[string]LocaleEntryPayload, len(record.Locales))
	for locale, entry := range record.Locales {
		locales[locale.String()] = LocaleEntryPayload{
			Title:       entry.Title,
			Description: entry.Description,
			CoverURL:    entry.CoverURL,
		}
	}
	return MetadataResponse{
		VideoKey:  record.VideoKey,
		Locales:   locales,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
