package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/usecase"
)

type VideoResponse struct {
	Key              string   `json:"key"`
	Size             int64    `json:"size"`
	LastModified     string   `json:"lastModified"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	CoverURL         string   `json:"coverUrl,omitempty"`
	AvailableLocales []string `json:"availableLocales,omitempty"`
}

type ListVideosResponse struct {
	Videos                []VideoResponse `json:"videos"`
	IsTruncated           bool            `json:"isTruncated"`
	NextContinuationToken string          `json:"nextContinuationToken,omitempty"`
	KeyCount              int             `json:"keyCount"`
}

type PlayURLResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// VideoHandler serves the public catalog endpoints.
type VideoHandler struct {
	catalog  usecase.CatalogService
	playback usecase.PlaybackService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(catalog usecase.CatalogService, playback usecase.PlaybackService) *VideoHandler {
	return &VideoHandler{catalog: catalog, playback: playback}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxKeys := usecase.DefaultMaxKeys
	if raw := q.Get("maxKeys"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_maxKeys", "maxKeys must be an integer")
			return
		}
		maxKeys = parsed
	}

	output, err := h.catalog.ListVideos(r.Context(), usecase.ListVideosInput{
		Prefix:            q.Get("prefix"),
		Title:             q.Get("title"),
		MaxKeys:           maxKeys,
		ContinuationToken: q.Get("continuationToken"),
		Locale:            q.Get("locale"),
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	videos := make([]VideoResponse, 0, len(output.Videos))
	for _, v := range output.Videos {
		videos = append(videos, toVideoResponse(v))
	}
	JSON(w, http.StatusOK, ListVideosResponse{
		Videos:                videos,
		IsTruncated:           output.IsTruncated,
		NextContinuationToken: output.NextContinuationToken,
		KeyCount:              output.KeyCount,
	})
}

// Play handles GET /v1/videos/play
func (h *VideoHandler) Play(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		Error(w, http.StatusBadRequest, "invalid_key", "key is required")
		return
	}

	expires := 0
	if raw := r.URL.Query().Get("expires"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_expires", "expires must be an integer")
			return
		}
		expires = parsed
	}

	url, err := h.playback.PresignPlayback(r.Context(), key, expires)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, PlayURLResponse{URL: url, Key: key})
}

func toVideoResponse(v *model.ResolvedVideo) VideoResponse {
	locales := make([]string, 0, len(v.AvailableLocales))
	for _, locale := range v.AvailableLocales {
		locales = append(locales, locale.String())
	}
	return VideoResponse{
		Key:              v.Key,
		Size:             v.Size,
		LastModified:     v.LastModified.UTC().Format(time.RFC3339),
		Title:            v.Title,
		Description:      v.Description,
		CoverURL:         v.CoverURL,
		AvailableLocales: locales,
	}
}
