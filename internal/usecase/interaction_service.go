package usecase

import (
	"context"
	"strings"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

const maxCommentPageSize = 100

// LikeState is the caller-specific view of a video's likes.
type LikeState struct {
	Liked bool
	Count int
}

// CommentPage is one slice of a video's comment log plus the total.
type CommentPage struct {
	Comments []*model.Comment
	Total    int
}

// InteractionService handles likes and comments for a video.
type InteractionService interface {
	// ToggleLike flips the caller's like and returns the new state.
	ToggleLike(ctx context.Context, videoKey, userID string) (*LikeState, error)
	// GetLikeState returns the like count and whether the caller has liked.
	GetLikeState(ctx context.Context, videoKey, userID string) (*LikeState, error)
	// AddComment validates and stores a new comment.
	AddComment(ctx context.Context, videoKey, userID, username, content string) (*model.Comment, error)
	// ListComments returns a newest-first page. limit 0 means all.
	ListComments(ctx context.Context, videoKey string, limit, offset int) (*CommentPage, error)
}

type interactionService struct {
	likes    repository.LikeRepository
	comments repository.CommentRepository
}

// NewInteractionService creates an InteractionService instance.
func NewInteractionService(likes repository.LikeRepository, comments repository.CommentRepository) InteractionService {
	return &interactionService{
		likes:    likes,
		comments: comments,
	}
}

func (s *interactionService) ToggleLike(ctx context.Context, videoKey, userID string) (*LikeState, error) {
	if videoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	liked, count, err := s.likes.Toggle(ctx, videoKey, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Count: count}, nil
}

func (s *interactionService) GetLikeState(ctx context.Context, videoKey, userID string) (*LikeState, error) {
	if videoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	count, err := s.likes.Count(ctx, videoKey)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.HasLiked(ctx, videoKey, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Count: count}, nil
}

func (s *interactionService) AddComment(ctx context.Context, videoKey, userID, username, content string) (*model.Comment, error) {
	if videoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, model.NewValidationError("content", "must not be empty")
	}

	comment := model.NewComment(videoKey, userID, username, content)
	if err := s.comments.Add(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *interactionService) ListComments(ctx context.Context, videoKey string, limit, offset int) (*CommentPage, error) {
	if videoKey == "" {
		return nil, model.NewValidationError("key", "must not be empty")
	}
	if limit < 0 || limit > maxCommentPageSize {
		return nil, model.NewValidationError("limit", "must be between 0 and 100")
	}
	if offset < 0 {
		return nil, model.NewValidationError("offset", "must not be negative")
	}

	comments, err := s.comments.List(ctx, videoKey, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.comments.Count(ctx, videoKey)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Total: total}, nil
}
