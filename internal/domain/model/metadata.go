package model

import (
	"path"
	"strings"
	"time"
)

// FallbackTitle is used when a video has no metadata and its key yields an
// empty filename stem.
const FallbackTitle = "Untitled"

// LocaleEntry holds the editable per-locale fields of a video.
// An entry with an empty title means "no content for this locale yet",
// which is distinct from the locale key being absent from the record.
type LocaleEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

// HasTitle reports whether the entry carries displayable content.
func (e LocaleEntry) HasTitle() bool {
	return strings.TrimSpace(e.Title) != ""
}

// VideoMetadata is the per-video metadata record, persisted as one JSON
// sidecar blob next to the video object. Once a record exists, every
// supported locale has an entry (possibly empty).
type VideoMetadata struct {
	VideoKey  string                 `json:"videoKey"`
	Locales   map[Locale]LocaleEntry `json:"locales"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// NewVideoMetadata creates a record for videoKey with the given locale set
// and every other supported locale initialized to an empty entry.
func NewVideoMetadata(videoKey string, locale Locale, entry LocaleEntry) *VideoMetadata {
	locales := make(map[Locale]LocaleEntry, len(SupportedLocales))
	for _, l := range SupportedLocales {
		locales[l] = LocaleEntry{}
	}
	locales[locale] = entry

	now := time.Now().UTC()
	return &VideoMetadata{
		VideoKey:  videoKey,
		Locales:   locales,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyLocale merges entry into the record's target locale and bumps
// UpdatedAt. Title and description are overwritten; an empty CoverURL does
// not erase a previously stored cover.
func (m *VideoMetadata) ApplyLocale(locale Locale, entry LocaleEntry) {
	if m.Locales == nil {
		m.Locales = make(map[Locale]LocaleEntry, len(SupportedLocales))
	}
	prev := m.Locales[locale]
	if entry.CoverURL == "" {
		entry.CoverURL = prev.CoverURL
	}
	m.Locales[locale] = entry
	m.UpdatedAt = time.Now().UTC()
}

// EntryFor returns the locale's entry and whether the locale key exists.
func (m *VideoMetadata) EntryFor(locale Locale) (LocaleEntry, bool) {
	entry, ok := m.Locales[locale]
	return entry, ok
}

// AvailableLocales returns every locale with a non-empty title, in
// declaration order.
func (m *VideoMetadata) AvailableLocales() []Locale {
	var out []Locale
	for _, l := range SupportedLocales {
		if m.Locales[l].HasTitle() {
			out = append(out, l)
		}
	}
	return out
}

// FirstTitledLocale returns the first locale (declaration order) whose
// entry has a non-empty title.
func (m *VideoMetadata) FirstTitledLocale() (Locale, bool) {
	for _, l := range SupportedLocales {
		if m.Locales[l].HasTitle() {
			return l, true
		}
	}
	return "", false
}

// TitleFromKey derives a display title from a video key by stripping
// directory components and the final extension. Unlike path.Base it does
// not collapse trailing slashes, so a key ending in "/" has an empty stem.
func TitleFromKey(key string) string {
	stem := key
	if i := strings.LastIndex(stem, "/"); i >= 0 {
		stem = stem[i+1:]
	}
	if ext := path.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	if stem == "" || stem == "." {
		return FallbackTitle
	}
	return stem
}

// ResolvedVideo is the locale-resolved listing view of one video.
// It is ephemeral output of the aggregator, never persisted.
type ResolvedVideo struct {
	Key              string
	Size             int64
	LastModified     time.Time
	Title            string
	Description      string
	CoverURL         string
	AvailableLocales []Locale
}
