// Package interaction provides like and comment storage backends.
package interaction

import (
	"context"
	"sort"
	"sync"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

// MemoryLikeStore is the process-local like backend. State is lost on
// restart, which is acceptable for this scope; a persistent backend can be
// swapped in behind repository.LikeRepository without touching callers.
type MemoryLikeStore struct {
	mu    sync.Mutex
	likes map[string]map[string]struct{}
}

// NewMemoryLikeStore creates an empty in-memory like store.
func NewMemoryLikeStore() *MemoryLikeStore {
	return &MemoryLikeStore{likes: make(map[string]map[string]struct{})}
}

// Toggle flips userID's membership in the video's like-set.
func (s *MemoryLikeStore) Toggle(ctx context.Context, videoKey, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[videoKey]
	if !ok {
		set = make(map[string]struct{})
		s.likes[videoKey] = set
	}

	if _, liked := set[userID]; liked {
		delete(set, userID)
		return false, len(set), nil
	}
	set[userID] = struct{}{}
	return true, len(set), nil
}

// Count returns the video's like count.
func (s *MemoryLikeStore) Count(ctx context.Context, videoKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes[videoKey]), nil
}

// HasLiked reports whether userID currently likes the video.
func (s *MemoryLikeStore) HasLiked(ctx context.Context, videoKey, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, liked := s.likes[videoKey][userID]
	return liked, nil
}

// MemoryCommentStore is the process-local comment backend.
type MemoryCommentStore struct {
	mu       sync.Mutex
	comments map[string][]*model.Comment
}

// NewMemoryCommentStore creates an empty in-memory comment store.
func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: make(map[string][]*model.Comment)}
}

// Add appends a comment to its video's log.
func (s *MemoryCommentStore) Add(ctx context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.VideoKey] = append(s.comments[comment.VideoKey], comment)
	return nil
}

// List returns comments newest-first with offset/limit applied after sorting.
func (s *MemoryCommentStore) List(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error) {
	s.mu.Lock()
	log := s.comments[videoKey]
	// Copy in reverse insertion order so equal timestamps still resolve
	// newest-inserted-first under the stable sort below.
	sorted := make([]*model.Comment, len(log))
	for i, c := range log {
		sorted[len(log)-1-i] = c
	}
	s.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(sorted) {
		return []*model.Comment{}, nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Count returns the video's comment count.
func (s *MemoryCommentStore) Count(ctx context.Context, videoKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments[videoKey]), nil
}
