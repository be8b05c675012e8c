package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/metrics"
)

// objectReader abstracts minio.Object for testability.
// *minio.Object satisfies this interface.
type objectReader interface {
	io.ReadCloser
	Stat() (minio.ObjectInfo, error)
}

// minioClient defines the interface for MinIO operations used by the
// gateway. The abstraction allows unit testing with mocks, and pins the
// listing to one fixed, typed response shape: a mismatching upstream fails
// loudly instead of being sniffed around.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxKeys int) (minio.ListBucketV2Result, error)
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (objectReader, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// minioClientAdapter wraps *minio.Core to implement minioClient.
// Core is needed for ListObjectsV2's continuation-token pagination; its
// embedded *minio.Client serves the high-level operations.
type minioClientAdapter struct {
	core *minio.Core
}

func (a *minioClientAdapter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return a.core.Client.BucketExists(ctx, bucketName)
}

func (a *minioClientAdapter) ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxKeys int) (minio.ListBucketV2Result, error) {
	return a.core.ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter, maxKeys)
}

func (a *minioClientAdapter) PresignedPutObject(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error) {
	return a.core.Client.PresignedPutObject(ctx, bucketName, objectName, expiry)
}

func (a *minioClientAdapter) PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
	return a.core.Client.PresignedGetObject(ctx, bucketName, objectName, expiry, reqParams)
}

func (a *minioClientAdapter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.core.Client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (a *minioClientAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (objectReader, error) {
	return a.core.Client.GetObject(ctx, bucketName, objectName, opts)
}

func (a *minioClientAdapter) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return a.core.Client.RemoveObject(ctx, bucketName, objectName, opts)
}

// ClientConfig holds configuration for the object store client.
type ClientConfig struct {
	Endpoint       string
	PublicEndpoint string // Optional: external-facing endpoint for presigned URLs
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// Client wraps a MinIO client and implements repository.ObjectStorage
// against any S3-compatible store (MinIO, Cloudflare R2).
type Client struct {
	client          minioClient
	presignedClient minioClient // Separate client for presigned URLs (may use public endpoint)
	bucket          string
}

// NewClient creates a new object store client.
// It verifies the bucket exists during initialization to fail fast on
// misconfiguration. If PublicEndpoint is set, a separate client is created
// for presigned URL generation.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	adapter := &minioClientAdapter{core: core}

	var presignedAdapter minioClient = adapter
	if cfg.PublicEndpoint != "" {
		presignedCore, err := minio.NewCore(cfg.PublicEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create presigned minio client: %w", err)
		}
		presignedAdapter = &minioClientAdapter{core: presignedCore}
	}

	return newClientWithMinioClient(ctx, adapter, presignedAdapter, cfg.Bucket)
}

// newClientWithMinioClient creates a Client with a given minioClient
// implementation. Used for dependency injection in tests.
func newClientWithMinioClient(ctx context.Context, client, presignedClient minioClient, bucket string) (*Client, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, bucket)
	}

	return &Client{
		client:          client,
		presignedClient: presignedClient,
		bucket:          bucket,
	}, nil
}

// List returns one page of objects under the given prefix, passing the
// gateway's truncation and continuation signal through unmodified.
func (c *Client) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult, error) {
	res, err := c.client.ListObjectsV2(c.bucket, opts.Prefix, "", opts.ContinuationToken, "", opts.MaxKeys)
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpList, metrics.GatewayStatusError).Inc()
		return nil, fmt.Errorf("%w: list objects: %v", repository.ErrUpstreamUnavailable, err)
	}
	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpList, metrics.GatewayStatusSuccess).Inc()

	objects := make([]repository.ObjectInfo, 0, len(res.Contents))
	for _, obj := range res.Contents {
		objects = append(objects, repository.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return &repository.ListResult{
		Objects:               objects,
		IsTruncated:           res.IsTruncated,
		NextContinuationToken: res.NextContinuationToken,
	}, nil
}

// GeneratePresignedUploadURL creates a presigned URL for direct client upload.
// Uses presignedClient which may be configured with a public endpoint.
func (c *Client) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignedURL, err := c.presignedClient.PresignedPutObject(ctx, c.bucket, key, expiry)
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPresign, metrics.GatewayStatusError).Inc()
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}
	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPresign, metrics.GatewayStatusSuccess).Inc()
	return presignedURL.String(), nil
}

// GeneratePresignedDownloadURL creates a presigned URL for reading an object.
// Uses presignedClient which may be configured with a public endpoint.
func (c *Client) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := c.presignedClient.PresignedGetObject(ctx, c.bucket, key, expiry, reqParams)
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPresign, metrics.GatewayStatusError).Inc()
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPresign, metrics.GatewayStatusSuccess).Inc()
	return presignedURL.String(), nil
}

// Upload stores an object in the storage.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPut, metrics.GatewayStatusError).Inc()
		return fmt.Errorf("failed to upload object: %w", err)
	}
	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpPut, metrics.GatewayStatusSuccess).Inc()
	return nil
}

// Download retrieves an object from the storage.
// Caller is responsible for closing the returned ReadCloser.
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpGet, metrics.GatewayStatusError).Inc()
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject returns a lazy reader that doesn't fail until read,
	// so verify existence via Stat.
	_, err = obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpGet, metrics.GatewayStatusSuccess).Inc()
			return nil, repository.ErrObjectNotFound
		}
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpGet, metrics.GatewayStatusError).Inc()
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpGet, metrics.GatewayStatusSuccess).Inc()
	return obj, nil
}

// Delete removes an object from the storage.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpDelete, metrics.GatewayStatusError).Inc()
		return fmt.Errorf("failed to delete object: %w", err)
	}
	metrics.GatewayOperationsTotal.WithLabelValues(metrics.GatewayOpDelete, metrics.GatewayStatusSuccess).Inc()
	return nil
}

// Ping verifies the gateway connection is alive by checking bucket access.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to ping object storage: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
