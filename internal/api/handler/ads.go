package handler

import (
	"net/http"

	"github.com/hszk-dev/vidcatalog/internal/ads"
)

type AdsConfigResponse struct {
	Enabled bool          `json:"enabled"`
	Slots   *ads.Resolved `json:"slots,omitempty"`
}

type VastResponse struct {
	Enabled bool   `json:"enabled"`
	VastURL string `json:"vastUrl,omitempty"`
}

// AdsHandler serves the player's ad configuration.
type AdsHandler struct {
	cfg ads.Config
}

// NewAdsHandler creates a new AdsHandler.
func NewAdsHandler(cfg ads.Config) *AdsHandler {
	return &AdsHandler{cfg: cfg}
}

// Config handles GET /v1/ads/config
func (h *AdsHandler) Config(w http.ResponseWriter, r *http.Request) {
	resolved := ads.Resolve(h.cfg)
	JSON(w, http.StatusOK, AdsConfigResponse{
		Enabled: resolved != nil,
		Slots:   resolved,
	})
}

// Vast handles GET /v1/ads/vast
func (h *AdsHandler) Vast(w http.ResponseWriter, r *http.Request) {
	position, err := ads.ParsePosition(r.URL.Query().Get("position"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_position", "position must be pre-roll, mid-roll or post-roll")
		return
	}

	vastURL := ads.ForPosition(h.cfg, position)
	JSON(w, http.StatusOK, VastResponse{
		Enabled: vastURL != "",
		VastURL: vastURL,
	})
}
