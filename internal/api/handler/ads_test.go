package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hszk-dev/vidcatalog/internal/ads"
)

func adsConfig() ads.Config {
	return ads.Config{
		Enabled:  true,
		Provider: ads.ProviderExoClick,
		ExoClick: ads.Slots{PreRoll: "https://exo.example.com/pre"},
	}
}

func TestAdsHandler_Config(t *testing.T) {
	h := NewAdsHandler(adsConfig())

	w := httptest.NewRecorder()
	h.Config(w, httptest.NewRequest(http.MethodGet, "/v1/ads/config", nil))

	var resp AdsConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Enabled || resp.Slots == nil || resp.Slots.PreRoll == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAdsHandler_Config_Disabled(t *testing.T) {
	h := NewAdsHandler(ads.Config{})

	w := httptest.NewRecorder()
	h.Config(w, httptest.NewRequest(http.MethodGet, "/v1/ads/config", nil))

	var resp AdsConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Enabled || resp.Slots != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAdsHandler_Vast(t *testing.T) {
	h := NewAdsHandler(adsConfig())

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantEnabled bool
	}{
		{"configured slot", "/v1/ads/vast?position=pre-roll", http.StatusOK, true},
		{"empty slot", "/v1/ads/vast?position=mid-roll", http.StatusOK, false},
		{"bad position", "/v1/ads/vast?position=banner", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Vast(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp VastResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", resp.Enabled, tt.wantEnabled)
			}
		})
	}
}
