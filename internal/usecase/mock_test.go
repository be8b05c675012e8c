package usecase

import (
	"context"
	"io"
	"time"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

type mockObjectStorage struct {
	listFunc                 func(ctx context.Context, opts repository.ListOptions) (*repository.ListResult, error)
	presignedUploadURLFunc   func(ctx context.Context, key string, expiry time.Duration) (string, error)
	presignedDownloadURLFunc func(ctx context.Context, key string, expiry time.Duration) (string, error)
	uploadFunc               func(ctx context.Context, key string, reader io.Reader, contentType string) error
	downloadFunc             func(ctx context.Context, key string) (io.ReadCloser, error)
	deleteFunc               func(ctx context.Context, key string) error
}

func (m *mockObjectStorage) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult, error) {
	return m.listFunc(ctx, opts)
}

func (m *mockObjectStorage) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return m.presignedUploadURLFunc(ctx, key, expiry)
}

func (m *mockObjectStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return m.presignedDownloadURLFunc(ctx, key, expiry)
}

func (m *mockObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return m.uploadFunc(ctx, key, reader, contentType)
}

func (m *mockObjectStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.downloadFunc(ctx, key)
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	return m.deleteFunc(ctx, key)
}

type mockMetadataRepository struct {
	getFunc      func(ctx context.Context, videoKey string) (*model.VideoMetadata, error)
	getBatchFunc func(ctx context.Context, videoKeys []string) (map[string]*model.VideoMetadata, error)
	upsertFunc   func(ctx context.Context, videoKey string, locale model.Locale, entry model.LocaleEntry) (*model.VideoMetadata, error)
}

func (m *mockMetadataRepository) Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	return m.getFunc(ctx, videoKey)
}

func (m *mockMetadataRepository) GetBatch(ctx context.Context, videoKeys []string) (map[string]*model.VideoMetadata, error) {
	return m.getBatchFunc(ctx, videoKeys)
}

func (m *mockMetadataRepository) Upsert(ctx context.Context, videoKey string, locale model.Locale, entry model.LocaleEntry) (*model.VideoMetadata, error) {
	return m.upsertFunc(ctx, videoKey, locale, entry)
}

type mockLikeRepository struct {
	toggleFunc   func(ctx context.Context, videoKey, userID string) (bool, int, error)
	countFunc    func(ctx context.Context, videoKey string) (int, error)
	hasLikedFunc func(ctx context.Context, videoKey, userID string) (bool, error)
}

func (m *mockLikeRepository) Toggle(ctx context.Context, videoKey, userID string) (bool, int, error) {
	return m.toggleFunc(ctx, videoKey, userID)
}

func (m *mockLikeRepository) Count(ctx context.Context, videoKey string) (int, error) {
	return m.countFunc(ctx, videoKey)
}

func (m *mockLikeRepository) HasLiked(ctx context.Context, videoKey, userID string) (bool, error) {
	return m.hasLikedFunc(ctx, videoKey, userID)
}

type mockCommentRepository struct {
	addFunc   func(ctx context.Context, comment *model.Comment) error
	listFunc  func(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error)
	countFunc func(ctx context.Context, videoKey string) (int, error)
}

func (m *mockCommentRepository) Add(ctx context.Context, comment *model.Comment) error {
	return m.addFunc(ctx, comment)
}

func (m *mockCommentRepository) List(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error) {
	return m.listFunc(ctx, videoKey, limit, offset)
}

func (m *mockCommentRepository) Count(ctx context.Context, videoKey string) (int, error) {
	return m.countFunc(ctx, videoKey)
}
