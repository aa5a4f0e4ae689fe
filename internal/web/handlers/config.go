package handlers

import (
	"net/http"

	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/kozaktomas/namevibe/internal/vibe"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse describes the limits a client should respect
type ConfigResponse struct {
	Provider               string   `json:"provider"`
	AdmissionLimit         int      `json:"admissionLimit"`
	AdmissionWindowSeconds int      `json:"admissionWindowSeconds"`
	MaxUploadBytes         int      `json:"maxUploadBytes"`
	Genders                []string `json:"genders"`
	Vibes                  []string `json:"vibes"`
}

// VibeInfo describes one vibe category
type VibeInfo struct {
	Tag      string `json:"tag"`
	Priority int    `json:"priority"` // 1 wins over 2 when several emotions are high
	Emotion  string `json:"emotion,omitempty"`
}

func vibeTags() []string {
	tags := make([]string, 0, len(vibe.Categories))
	for _, c := range vibe.Categories {
		tags = append(tags, c.Tag())
	}
	return tags
}

// Get returns the public configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ConfigResponse{
		Provider:               h.config.Vision.Provider,
		AdmissionLimit:         h.config.Admission.Limit,
		AdmissionWindowSeconds: int(h.config.Admission.Window.Seconds()),
		MaxUploadBytes:         constants.MaxUploadSize,
		Genders:                []string{"M", "F", "U"},
		Vibes:                  vibeTags(),
	})
}

// Vibes lists the vibe categories in classification priority order
func (h *ConfigHandler) Vibes(w http.ResponseWriter, r *http.Request) {
	emotions := map[vibe.Category]vibe.Emotion{
		vibe.Friendly: vibe.Joy,
		vibe.Calm:     vibe.Sorrow,
		vibe.Cool:     vibe.Anger,
	}
	vibes := make([]VibeInfo, 0, len(vibe.Categories))
	for i, c := range vibe.Categories {
		vibes = append(vibes, VibeInfo{
			Tag:      c.Tag(),
			Priority: i + 1,
			Emotion:  string(emotions[c]),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"vibes":   vibes,
		"default": vibe.Friendly.Tag(),
	})
}
