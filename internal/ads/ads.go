// Package ads resolves VAST ad tag configuration for the player.
package ads

import "fmt"

// Provider selects which ad network's tags to serve.
type Provider string

const (
	ProviderNone     Provider = "none"
	ProviderExoClick Provider = "exoclick"
	ProviderAdsterra Provider = "adsterra"
	ProviderBoth     Provider = "both"
)

// Position is a playback slot an ad tag can attach to.
type Position string

const (
	PositionPreRoll  Position = "pre-roll"
	PositionMidRoll  Position = "mid-roll"
	PositionPostRoll Position = "post-roll"
)

// ParsePosition validates a position query value.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionPreRoll, PositionMidRoll, PositionPostRoll:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown ad position %q", s)
}

// Slots holds one provider's VAST tag URLs per playback position.
// Empty strings mean the provider has no tag for that slot.
type Slots struct {
	PreRoll  string
	MidRoll  string
	PostRoll string
}

func (s Slots) forPosition(pos Position) string {
	switch pos {
	case PositionPreRoll:
		return s.PreRoll
	case PositionMidRoll:
		return s.MidRoll
	case PositionPostRoll:
		return s.PostRoll
	}
	return ""
}

func (s Slots) empty() bool {
	return s.PreRoll == "" && s.MidRoll == "" && s.PostRoll == ""
}

// Config is the raw ad configuration as deployed.
type Config struct {
	Enabled  bool
	Provider Provider
	ExoClick Slots
	Adsterra Slots
}

// Resolved is the effective per-slot tag set handed to the player.
type Resolved struct {
	PreRoll  string `json:"preRoll,omitempty"`
	MidRoll  string `json:"midRoll,omitempty"`
	PostRoll string `json:"postRoll,omitempty"`
}

// Resolve computes the effective ad slots. It returns nil when ads are
// disabled, the provider is none or unknown, or every candidate slot is
// empty. With provider "both", ExoClick wins each slot it fills and
// Adsterra backfills the rest.
func Resolve(cfg Config) *Resolved {
	if !cfg.Enabled {
		return nil
	}

	var slots Slots
	switch cfg.Provider {
	case ProviderExoClick:
		slots = cfg.ExoClick
	case ProviderAdsterra:
		slots = cfg.Adsterra
	case ProviderBoth:
		slots = cfg.ExoClick
		if slots.PreRoll == "" {
			slots.PreRoll = cfg.Adsterra.PreRoll
		}
		if slots.MidRoll == "" {
			slots.MidRoll = cfg.Adsterra.MidRoll
		}
		if slots.PostRoll == "" {
			slots.PostRoll = cfg.Adsterra.PostRoll
		}
	default:
		return nil
	}

	if slots.empty() {
		return nil
	}
	return &Resolved{
		PreRoll:  slots.PreRoll,
		MidRoll:  slots.MidRoll,
		PostRoll: slots.PostRoll,
	}
}

// ForPosition returns the resolved tag URL for one slot, or "" when no ad
// should play there.
func ForPosition(cfg Config, pos Position) string {
	resolved := Resolve(cfg)
	if resolved == nil {
		return ""
	}
	return Slots{
		PreRoll:  resolved.PreRoll,
		MidRoll:  resolved.MidRoll,
		PostRoll: resolved.PostRoll,
	}.forPosition(pos)
}

// HasAds reports whether the configuration yields at least one slot.
func HasAds(cfg Config) bool {
	return Resolve(cfg) != nil
}
