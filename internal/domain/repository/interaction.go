package repository

import (
	"context"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

// LikeRepository tracks which pseudo-users liked which videos.
// Toggle must be atomic per (videoKey, userID) pair under concurrent
// requests; no ordering guarantee is required across different users.
type LikeRepository interface {
	// Toggle flips userID's membership in the video's like-set and
	// returns the post-toggle state.
	Toggle(ctx context.Context, videoKey, userID string) (liked bool, count int, err error)

	// Count returns the video's like count.
	Count(ctx context.Context, videoKey string) (int, error)

	// HasLiked reports whether userID currently likes the video.
	HasLiked(ctx context.Context, videoKey, userID string) (bool, error)
}

// CommentRepository holds each video's append-only comment log.
type CommentRepository interface {
	// Add appends a comment to its video's log.
	Add(ctx context.Context, comment *model.Comment) error

	// List returns comments newest-first. offset and limit are applied
	// after sorting; limit <= 0 means no limit.
	List(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error)

	// Count returns the video's comment count.
	Count(ctx context.Context, videoKey string) (int, error)
}
