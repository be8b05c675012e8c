package repository

import (
	"context"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

// MetadataRepository persists per-video, per-locale metadata records.
// The canonical implementation stores one JSON sidecar blob per video in
// the same object store as the videos themselves.
type MetadataRepository interface {
	// Get retrieves the metadata record for a video key.
	// Returns ErrMetadataNotFound if no record exists; this is a normal
	// outcome for never-edited videos, not an error condition.
	Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error)

	// GetBatch fetches records for many keys concurrently. Keys without a
	// record are simply absent from the result map; a failed individual
	// fetch is treated as absence, never a batch-wide failure.
	GetBatch(ctx context.Context, videoKeys []string) (map[string]*model.VideoMetadata, error)

	// Upsert creates the record if absent (initializing every supported
	// locale to an empty entry) or merges the entry into the existing
	// record's target locale. An empty CoverURL never erases a stored
	// cover. The read-modify-write is serialized per video key.
	Upsert(ctx context.Context, videoKey string, locale model.Locale, entry model.LocaleEntry) (*model.VideoMetadata, error)
}
