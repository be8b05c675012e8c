package interaction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

const (
	likeKeyPrefix    = "likes:"
	commentKeyPrefix = "comments:"
)

// RedisLikeStore is the Redis-backed like backend, for deployments that
// want likes to survive restarts.
type RedisLikeStore struct {
	client *redis.Client
}

// NewRedisLikeStore creates a Redis-backed like store.
func NewRedisLikeStore(client *redis.Client) *RedisLikeStore {
	return &RedisLikeStore{client: client}
}

// Toggle flips userID's membership in the video's like-set.
// SADD reports whether the member was new, so add-then-remove stays atomic
// per (videoKey, userID) pair without a transaction.
func (s *RedisLikeStore) Toggle(ctx context.Context, videoKey, userID string) (bool, int, error) {
	key := likeKeyPrefix + videoKey

	added, err := s.client.SAdd(ctx, key, userID).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis sadd: %w", err)
	}

	liked := added == 1
	if !liked {
		if err := s.client.SRem(ctx, key, userID).Err(); err != nil {
			return false, 0, fmt.Errorf("redis srem: %w", err)
		}
	}

	count, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis scard: %w", err)
	}
	return liked, int(count), nil
}

// Count returns the video's like count.
func (s *RedisLikeStore) Count(ctx context.Context, videoKey string) (int, error) {
	count, err := s.client.SCard(ctx, likeKeyPrefix+videoKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return int(count), nil
}

// HasLiked reports whether userID currently likes the video.
func (s *RedisLikeStore) HasLiked(ctx context.Context, videoKey, userID string) (bool, error) {
	liked, err := s.client.SIsMember(ctx, likeKeyPrefix+videoKey, userID).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember: %w", err)
	}
	return liked, nil
}

// commentJSON is the Redis member representation of a Comment.
type commentJSON struct {
	ID        string `json:"id"`
	VideoKey  string `json:"video_key"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// RedisCommentStore is the Redis-backed comment backend. Comments live in
// a sorted set scored by creation time, so newest-first reads are a
// reverse range.
type RedisCommentStore struct {
	client *redis.Client
}

// NewRedisCommentStore creates a Redis-backed comment store.
func NewRedisCommentStore(client *redis.Client) *RedisCommentStore {
	return &RedisCommentStore{client: client}
}

// Add appends a comment to its video's log.
func (s *RedisCommentStore) Add(ctx context.Context, comment *model.Comment) error {
	data, err := json.Marshal(commentJSON{
		ID:        comment.ID,
		VideoKey:  comment.VideoKey,
		UserID:    comment.UserID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("serialize comment: %w", err)
	}

	err = s.client.ZAdd(ctx, commentKeyPrefix+comment.VideoKey, redis.Z{
		Score:  float64(comment.CreatedAt.UnixMicro()),
		Member: string(data),
	}).Err()
	if err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}
	return nil
}

// List returns comments newest-first with offset/limit applied after sorting.
func (s *RedisCommentStore) List(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error) {
	if offset < 0 {
		offset = 0
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}

	members, err := s.client.ZRevRange(ctx, commentKeyPrefix+videoKey, int64(offset), stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrange: %w", err)
	}

	comments := make([]*model.Comment, 0, len(members))
	for _, member := range members {
		var cj commentJSON
		if err := json.Unmarshal([]byte(member), &cj); err != nil {
			return nil, fmt.Errorf("deserialize comment: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cj.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse comment timestamp: %w", err)
		}
		comments = append(comments, &model.Comment{
			ID:        cj.ID,
			VideoKey:  cj.VideoKey,
			UserID:    cj.UserID,
			Username:  cj.Username,
			Content:   cj.Content,
			CreatedAt: createdAt,
		})
	}
	return comments, nil
}

// Count returns the video's comment count.
func (s *RedisCommentStore) Count(ctx context.Context, videoKey string) (int, error) {
	count, err := s.client.ZCard(ctx, commentKeyPrefix+videoKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcard: %w", err)
	}
	return int(count), nil
}
