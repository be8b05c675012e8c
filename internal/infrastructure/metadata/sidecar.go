// Package metadata persists video metadata records as JSON sidecar blobs
// in the same object store as the videos themselves.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

const (
	// sidecarSuffix is appended to a video key to derive its metadata key.
	sidecarSuffix = ".metadata.json"

	// lockStripes sizes the striped mutex pool serializing per-key upserts.
	lockStripes = 64

	// defaultBatchConcurrency bounds the GetBatch fan-out.
	defaultBatchConcurrency = 8
)

// SidecarKey derives the metadata object key for a video key.
// Sidecars live beside the videos, which is why the aggregator's extension
// filter must drop them from listings.
func SidecarKey(videoKey string) string {
	return videoKey + sidecarSuffix
}

// Store implements repository.MetadataRepository on top of an
// ObjectStorage gateway: one JSON blob per video at the derived key.
// Upserts are serialized per video key with a striped mutex, closing the
// read-modify-write race the blob-per-video layout would otherwise have.
type Store struct {
	storage          repository.ObjectStorage
	locks            [lockStripes]sync.Mutex
	batchConcurrency int
}

// NewStore creates a sidecar-backed metadata store.
func NewStore(storage repository.ObjectStorage) *Store {
	return &Store{
		storage:          storage,
		batchConcurrency: defaultBatchConcurrency,
	}
}

// Get retrieves the metadata record for a video key.
func (s *Store) Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	body, err := s.storage.Download(ctx, SidecarKey(videoKey))
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, repository.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("download metadata sidecar: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read metadata sidecar: %w", err)
	}

	var record model.VideoMetadata
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode metadata sidecar for %s: %w", videoKey, err)
	}

	return &record, nil
}

// GetBatch fetches records for many keys with a bounded concurrent fan-out.
// Per-key failures are swallowed and treated as absence so one broken
// sidecar never aborts a whole listing.
func (s *Store) GetBatch(ctx context.Context, videoKeys []string) (map[string]*model.VideoMetadata, error) {
	results := make(map[string]*model.VideoMetadata, len(videoKeys))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for _, key := range videoKeys {
		g.Go(func() error {
			record, err := s.Get(ctx, key)
			if err != nil {
				if !errors.Is(err, repository.ErrMetadataNotFound) {
					slog.Warn("metadata fetch failed, treating as absent",
						slog.String("video_key", key),
						slog.Any("error", err),
					)
				}
				return nil
			}
			mu.Lock()
			results[key] = record
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert creates or merges the record for a video key under its stripe lock.
func (s *Store) Upsert(ctx context.Context, videoKey string, locale model.Locale, entry model.LocaleEntry) (*model.VideoMetadata, error) {
	lock := s.stripe(videoKey)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.Get(ctx, videoKey)
	switch {
	case errors.Is(err, repository.ErrMetadataNotFound):
		record = model.NewVideoMetadata(videoKey, locale, entry)
	case err != nil:
		return nil, err
	default:
		record.ApplyLocale(locale, entry)
	}

	if err := s.put(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) put(ctx context.Context, record *model.VideoMetadata) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata record: %w", err)
	}

	if err := s.storage.Upload(ctx, SidecarKey(record.VideoKey), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("upload metadata sidecar: %w", err)
	}
	return nil
}

func (s *Store) stripe(videoKey string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(videoKey))
	return &s.locks[h.Sum32()%lockStripes]
}
