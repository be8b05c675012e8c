package repository

import "errors"

var (
	// ErrObjectNotFound is returned when an object key does not exist in storage.
	ErrObjectNotFound = errors.New("object not found")

	// ErrMetadataNotFound is returned when a video has no metadata record.
	ErrMetadataNotFound = errors.New("video metadata not found")

	// ErrUpstreamUnavailable is returned when the object store gateway is
	// unreachable or erroring. Callers surface it as a 5xx with a safe
	// message, never as a silent partial result.
	ErrUpstreamUnavailable = errors.New("object storage unavailable")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
