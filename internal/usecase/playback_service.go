package usecase

import (
	"context"
	"time"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

const (
	minPresignTTL     = 60 * time.Second
	maxPresignTTL     = 3600 * time.Second
	defaultPresignTTL = 900 * time.Second

	defaultUploadContentType = "video/mp4"
)

// PresignUploadInput requests a presigned PUT URL for a new object.
type PresignUploadInput struct {
	Key         string
	ContentType string // defaults to video/mp4
	Expires     int    // seconds, clamped to [60, 3600]
}

// PresignUploadOutput carries the PUT URL plus the content type the
// uploader must send, echoed so clients need not re-derive the default.
type PresignUploadOutput struct {
	URL         string
	Key         string
	ContentType string
}

// PlaybackService hands out time-limited URLs for the bucket's objects and
// removes videos on request.
type PlaybackService interface {
	// PresignPlayback returns a presigned GET URL for an object.
	PresignPlayback(ctx context.Context, key string, expiresSeconds int) (string, error)
	// PresignUpload returns a presigned PUT URL for a new object.
	PresignUpload(ctx context.Context, input PresignUploadInput) (*PresignUploadOutput, error)
	// DeleteVideo removes the video object. The metadata sidecar is left
	// in place: record lifecycle is independent of the object's.
	DeleteVideo(ctx context.Context, key string) error
}

type playbackService struct {
	storage repository.ObjectStorage
}

// NewPlaybackService creates a PlaybackService instance.
func NewPlaybackService(storage repository.ObjectStorage) PlaybackService {
	return &playbackService{storage: storage}
}

func (s *playbackService) PresignPlayback(ctx context.Context, key string, expiresSeconds int) (string, error) {
	if key == "" {
		return "", model.NewValidationError("key", "must not be empty")
	}
	return s.storage.GeneratePresignedDownloadURL(ctx, key, clampTTL(expiresSeconds))
}

func (s *playbackService) PresignUpload(ctx context.Context, input PresignUploadInput) (*PresignUploadOutput, error) {
	if input.Key == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	if input.ContentType == "" {
		input.ContentType = defaultUploadContentType
	}
	url, err := s.storage.GeneratePresignedUploadURL(ctx, input.Key, clampTTL(input.Expires))
	if err != nil {
		return nil, err
	}
	return &PresignUploadOutput{
		URL:         url,
		Key:         input.Key,
		ContentType: input.ContentType,
	}, nil
}

func (s *playbackService) DeleteVideo(ctx context.Context, key string) error {
	if key == "" {
		return model.NewValidationError("key", "must not be empty")
	}
	return s.storage.Delete(ctx, key)
}

// clampTTL maps a requested expiry in seconds onto the allowed presign
// window. Zero or negative means the default.
func clampTTL(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultPresignTTL
	}
	ttl := time.Duration(seconds) * time.Second
	if ttl < minPresignTTL {
		return minPresignTTL
	}
	if ttl > maxPresignTTL {
		return maxPresignTTL
	}
	return ttl
}
