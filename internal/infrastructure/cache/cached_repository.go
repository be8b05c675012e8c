package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/metrics"
)

// DefaultRecordTTL is the default TTL for cached metadata records.
const DefaultRecordTTL = 5 * time.Minute

// CachedMetadataRepository decorates a MetadataRepository with a
// cache-aside layer. Reads coalesce through singleflight to prevent a
// cache stampede when many listings resolve the same sidecar at once;
// upserts invalidate before delegating so no stale record outlives a
// write. Cache failures degrade to the delegate, never to an error.
type CachedMetadataRepository struct {
	delegate repository.MetadataRepository
	cache    MetadataCache
	sfGroup  singleflight.Group
	ttl      time.Duration
}

// NewCachedMetadataRepository wraps delegate with the given cache.
// A non-positive ttl falls back to DefaultRecordTTL.
func NewCachedMetadataRepository(delegate repository.MetadataRepository, cache MetadataCache, ttl time.Duration) *CachedMetadataRepository {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	return &CachedMetadataRepository{
		delegate: delegate,
		cache:    cache,
		ttl:      ttl,
	}
}

// Get retrieves a record, cache first.
func (r *CachedMetadataRepository) Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	result, err, shared := r.sfGroup.Do(videoKey, func() (any, error) {
		return r.getWithCache(ctx, videoKey)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.VideoMetadata), nil
}

// GetBatch serves what it can from cache and delegates the rest in one
// batch. Per-key absence semantics are inherited from the delegate.
func (r *CachedMetadataRepository) GetBatch(ctx context.Context, videoKeys []string) (map[string]*model.VideoMetadata, error) {
	results := make(map[string]*model.VideoMetadata, len(videoKeys))
	var misses []string

	for _, key := range videoKeys {
		record, err := r.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("metadata cache get failed",
				slog.String("video_key", key),
				slog.Any("error", err),
			)
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
			misses = append(misses, key)
			continue
		}
		if record == nil {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			misses = append(misses, key)
			continue
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
		results[key] = record
	}

	if len(misses) == 0 {
		return results, nil
	}

	fetched, err := r.delegate.GetBatch(ctx, misses)
	if err != nil {
		return nil, err
	}
	for key, record := range fetched {
		results[key] = record
		r.setCache(ctx, record)
	}
	return results, nil
}

// Upsert delegates the write and invalidates the cached record.
func (r *CachedMetadataRepository) Upsert(ctx context.Context, videoKey string, locale model.Locale, entry model.LocaleEntry) (*model.VideoMetadata, error) {
	if err := r.cache.Delete(ctx, videoKey); err != nil {
		// Invalidation failure is non-critical; the TTL bounds staleness.
		slog.Warn("metadata cache invalidation failed",
			slog.String("video_key", videoKey),
			slog.Any("error", err),
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	}

	record, err := r.delegate.Upsert(ctx, videoKey, locale, entry)
	if err != nil {
		return nil, err
	}

	r.setCache(ctx, record)
	return record, nil
}

func (r *CachedMetadataRepository) getWithCache(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	record, err := r.cache.Get(ctx, videoKey)
	if err != nil {
		slog.Warn("metadata cache get failed, falling back to store",
			slog.String("video_key", videoKey),
			slog.Any("error", err),
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
	} else if record != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
		return record, nil
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
	}

	record, err = r.delegate.Get(ctx, videoKey)
	if err != nil {
		return nil, err
	}

	r.setCache(ctx, record)
	return record, nil
}

func (r *CachedMetadataRepository) setCache(ctx context.Context, record *model.VideoMetadata) {
	if err := r.cache.Set(ctx, record, r.ttl); err != nil {
		slog.Warn("failed to cache metadata record",
			slog.String("video_key", record.VideoKey),
			slog.Any("error", err),
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
}
