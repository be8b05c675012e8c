package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/metrics"
)

// videoExtensions is the allow-list of playable container extensions.
// Covers and metadata sidecars share the bucket and must never surface
// as playable entries.
var videoExtensions = []string{".mp4", ".webm", ".ogg", ".mov", ".avi", ".mkv", ".m3u8"}

// DefaultMaxKeys is the page size callers get when they do not ask for one.
// Defaulting happens at the transport edge; the service itself rejects any
// out-of-range value, zero included.
const (
	DefaultMaxKeys = 100
	maxMaxKeys     = 1000
)

// ListVideosInput is the aggregator's query.
type ListVideosInput struct {
	Prefix            string
	Title             string
	MaxKeys           int // must be in [1, 1000]
	ContinuationToken string
	Locale            string // empty means no locale filter
}

// ListVideosOutput is one page of locale-resolved videos. IsTruncated and
// NextContinuationToken reflect the underlying listing, not the filtered
// result: a title search may shrink a page without changing them.
type ListVideosOutput struct {
	Videos                []*model.ResolvedVideo
	IsTruncated           bool
	NextContinuationToken string
	KeyCount              int
}

// CatalogService is the video listing aggregator: it merges the raw object
// listing with per-locale metadata into a searchable, paginated view.
type CatalogService interface {
	// ListVideos returns a locale-resolved page of the catalog.
	ListVideos(ctx context.Context, input ListVideosInput) (*ListVideosOutput, error)
}

type catalogService struct {
	storage  repository.ObjectStorage
	metadata repository.MetadataRepository
}

// NewCatalogService creates a CatalogService instance.
func NewCatalogService(storage repository.ObjectStorage, metadata repository.MetadataRepository) CatalogService {
	return &catalogService{
		storage:  storage,
		metadata: metadata,
	}
}

// ListVideos lists, filters, resolves and searches one page of the catalog.
// Read-only; a metadata batch failure degrades to filename-derived titles,
// a listing failure is a hard error.
func (s *catalogService) ListVideos(ctx context.Context, input ListVideosInput) (*ListVideosOutput, error) {
	if input.MaxKeys < 1 || input.MaxKeys > maxMaxKeys {
		return nil, model.NewValidationError("maxKeys", "must be between 1 and 1000")
	}

	locale := model.Locale(input.Locale)
	if input.Locale != "" && !locale.IsSupported() {
		return nil, model.NewValidationError("locale", "unsupported locale")
	}

	page, err := s.storage.List(ctx, repository.ListOptions{
		Prefix:            input.Prefix,
		MaxKeys:           input.MaxKeys,
		ContinuationToken: input.ContinuationToken,
	})
	if err != nil {
		metrics.ListingsTotal.WithLabelValues(metrics.ListingStatusError).Inc()
		return nil, err
	}

	keys := make([]string, 0, len(page.Objects))
	objects := make([]repository.ObjectInfo, 0, len(page.Objects))
	for _, obj := range page.Objects {
		if isVideoFile(obj.Key) {
			keys = append(keys, obj.Key)
			objects = append(objects, obj)
		}
	}

	listingStatus := metrics.ListingStatusSuccess
	records, err := s.metadata.GetBatch(ctx, keys)
	if err != nil {
		// Degrade: the listing still renders with filename-derived titles.
		slog.Warn("metadata batch fetch failed, degrading to filename titles",
			slog.Int("key_count", len(keys)),
			slog.Any("error", err),
		)
		listingStatus = metrics.ListingStatusDegraded
		records = nil
	}

	videos := make([]*model.ResolvedVideo, 0, len(objects))
	for _, obj := range objects {
		video, ok := resolveVideo(obj, records[obj.Key], locale)
		if ok {
			videos = append(videos, video)
		}
	}

	if term := strings.ToLower(strings.TrimSpace(input.Title)); term != "" {
		videos = filterBySearchTerm(videos, records, term)
	}

	metrics.ListingsTotal.WithLabelValues(listingStatus).Inc()
	return &ListVideosOutput{
		Videos:                videos,
		IsTruncated:           page.IsTruncated,
		NextContinuationToken: page.NextContinuationToken,
		KeyCount:              len(videos),
	}, nil
}

// resolveVideo produces the display view of one object, or ok=false when a
// strict locale filter excludes it.
func resolveVideo(obj repository.ObjectInfo, record *model.VideoMetadata, locale model.Locale) (*model.ResolvedVideo, bool) {
	video := &model.ResolvedVideo{
		Key:          obj.Key,
		Size:         obj.Size,
		LastModified: obj.LastModified,
	}

	if locale != "" {
		// Strict filter: a video with no content in the requested locale
		// does not belong to that locale's catalog. No filename fallback.
		if record == nil {
			return nil, false
		}
		entry, ok := record.EntryFor(locale)
		if !ok || !entry.HasTitle() {
			return nil, false
		}
		video.Title = strings.TrimSpace(entry.Title)
		video.Description = strings.TrimSpace(entry.Description)
		video.CoverURL = entry.CoverURL
		video.AvailableLocales = record.AvailableLocales()
		return video, true
	}

	if record != nil {
		if first, ok := record.FirstTitledLocale(); ok {
			entry, _ := record.EntryFor(first)
			video.Title = strings.TrimSpace(entry.Title)
			video.Description = strings.TrimSpace(entry.Description)
			video.CoverURL = entry.CoverURL
			video.AvailableLocales = record.AvailableLocales()
			return video, true
		}
	}

	video.Title = model.TitleFromKey(obj.Key)
	return video, true
}

// filterBySearchTerm keeps a video when the lowercased term is a substring
// of any available-locale title, the resolved display title, or the raw key.
func filterBySearchTerm(videos []*model.ResolvedVideo, records map[string]*model.VideoMetadata, term string) []*model.ResolvedVideo {
	matched := make([]*model.ResolvedVideo, 0, len(videos))
	for _, video := range videos {
		if matchesSearchTerm(video, records[video.Key], term) {
			matched = append(matched, video)
		}
	}
	return matched
}

func matchesSearchTerm(video *model.ResolvedVideo, record *model.VideoMetadata, term string) bool {
	if record != nil {
		for _, locale := range video.AvailableLocales {
			entry, _ := record.EntryFor(locale)
			if strings.Contains(strings.ToLower(entry.Title), term) {
				return true
			}
		}
	}
	if strings.Contains(strings.ToLower(video.Title), term) {
		return true
	}
	return strings.Contains(strings.ToLower(video.Key), term)
}

func isVideoFile(key string) bool {
	if key == "" {
		return false
	}
	lower := strings.ToLower(key)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
