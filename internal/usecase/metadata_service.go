package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

const coverKeyPrefix = "covers/"

// UpsertMetadataInput updates one locale of one video's metadata record.
type UpsertMetadataInput struct {
	VideoKey    string
	Locale      string
	Title       string
	Description string
	CoverURL    string
}

// UploadCoverInput stores a cover image and links it into the locale's
// metadata. Data accepts a raw base64 payload or a data: URL.
type UploadCoverInput struct {
	VideoKey    string
	Locale      string
	Data        string
	ContentType string
}

// MetadataService manages the per-video metadata records behind the catalog.
type MetadataService interface {
	// GetMetadata returns the full multi-locale record for a video.
	GetMetadata(ctx context.Context, videoKey string) (*model.VideoMetadata, error)
	// UpsertMetadata merges one locale's fields into the record,
	// creating it if absent.
	UpsertMetadata(ctx context.Context, input UpsertMetadataInput) (*model.VideoMetadata, error)
	// UploadCover decodes and stores a cover image, then merges its URL
	// into the locale's metadata without disturbing title or description.
	UploadCover(ctx context.Context, input UploadCoverInput) (string, error)
}

type metadataService struct {
	storage       repository.ObjectStorage
	metadata      repository.MetadataRepository
	publicBaseURL string
}

// NewMetadataService creates a MetadataService instance. publicBaseURL, when
// non-empty, prefixes stored cover URLs; otherwise the raw object key is
// stored and the client resolves it.
func NewMetadataService(storage repository.ObjectStorage, metadata repository.MetadataRepository, publicBaseURL string) MetadataService {
	return &metadataService{
		storage:       storage,
		metadata:      metadata,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *metadataService) GetMetadata(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	if videoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	return s.metadata.Get(ctx, videoKey)
}

func (s *metadataService) UpsertMetadata(ctx context.Context, input UpsertMetadataInput) (*model.VideoMetadata, error) {
	if input.VideoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	locale := model.Locale(input.Locale)
	if !locale.IsSupported() {
		return nil, model.NewValidationError("locale", "unsupported locale")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, model.NewValidationError("title", "must not be empty")
	}

	// Stored verbatim; the aggregator trims at resolution time.
	entry := model.LocaleEntry{
		Title:       input.Title,
		Description: input.Description,
		CoverURL:    input.CoverURL,
	}
	return s.metadata.Upsert(ctx, input.VideoKey, locale, entry)
}

func (s *metadataService) UploadCover(ctx context.Context, input UploadCoverInput) (string, error) {
	if input.VideoKey == "" {
		return "", model.NewValidationError("key", "must not be empty")
	}
	locale := model.Locale(input.Locale)
	if !locale.IsSupported() {
		return "", model.NewValidationError("locale", "unsupported locale")
	}

	payload, contentType := splitDataURL(input.Data, input.ContentType)
	if payload == "" {
		return "", model.NewValidationError("image", "must not be empty")
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", model.NewValidationError("image", "invalid base64 payload")
	}

	coverKey := fmt.Sprintf("%s%s-%s.%s", coverKeyPrefix, input.VideoKey, locale, coverExtension(contentType))
	if err := s.storage.Upload(ctx, coverKey, bytes.NewReader(decoded), contentType); err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	coverURL := coverKey
	if s.publicBaseURL != "" {
		coverURL = s.publicBaseURL + "/" + coverKey
	}

	// Merge the cover in without touching existing text. When no record
	// exists yet the video key doubles as a provisional title.
	entry := model.LocaleEntry{CoverURL: coverURL}
	record, err := s.metadata.Get(ctx, input.VideoKey)
	switch {
	case err == nil:
		if existing, ok := record.EntryFor(locale); ok {
			entry.Title = existing.Title
			entry.Description = existing.Description
		}
		if entry.Title == "" {
			entry.Title = input.VideoKey
		}
	case errors.Is(err, repository.ErrMetadataNotFound):
		entry.Title = input.VideoKey
	default:
		return "", err
	}

	if _, err := s.metadata.Upsert(ctx, input.VideoKey, locale, entry); err != nil {
		return "", err
	}
	return coverURL, nil
}

// splitDataURL strips a "data:image/...;base64," prefix when present and
// lets an embedded content type win over the declared one.
func splitDataURL(data, declaredType string) (payload, contentType string) {
	contentType = declaredType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(data, "data:") {
		return data, contentType
	}
	rest := strings.TrimPrefix(data, "data:")
	meta, encoded, found := strings.Cut(rest, ",")
	if !found {
		return "", contentType
	}
	if embedded := strings.TrimSuffix(meta, ";base64"); embedded != "" {
		contentType = embedded
	}
	return encoded, contentType
}

func coverExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
