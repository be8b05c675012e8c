package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

func TestInteractionService_ToggleLike(t *testing.T) {
	likes := &mockLikeRepository{
		toggleFunc: func(ctx context.Context, videoKey, userID string) (bool, int, error) {
			return true, 3, nil
		},
	}
	svc := NewInteractionService(likes, &mockCommentRepository{})

	state, err := svc.ToggleLike(context.Background(), "a.mp4", "user-1")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !state.Liked || state.Count != 3 {
		t.Errorf("state = %+v, want liked with count 3", state)
	}

	if _, err := svc.ToggleLike(context.Background(), "", "user-1"); err == nil {
		t.Error("empty key must fail")
	}
}

func TestInteractionService_GetLikeState(t *testing.T) {
	likes := &mockLikeRepository{
		countFunc: func(ctx context.Context, videoKey string) (int, error) {
			return 7, nil
		},
		hasLikedFunc: func(ctx context.Context, videoKey, userID string) (bool, error) {
			return userID == "user-1", nil
		},
	}
	svc := NewInteractionService(likes, &mockCommentRepository{})

	state, err := svc.GetLikeState(context.Background(), "a.mp4", "user-1")
	if err != nil {
		t.Fatalf("GetLikeState failed: %v", err)
	}
	if !state.Liked || state.Count != 7 {
		t.Errorf("state = %+v, want liked with count 7", state)
	}

	state, err = svc.GetLikeState(context.Background(), "a.mp4", "user-2")
	if err != nil {
		t.Fatalf("GetLikeState failed: %v", err)
	}
	if state.Liked {
		t.Error("user-2 must not appear as having liked")
	}
}

func TestInteractionService_AddComment(t *testing.T) {
	var stored *model.Comment
	comments := &mockCommentRepository{
		addFunc: func(ctx context.Context, comment *model.Comment) error {
			stored = comment
			return nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, comments)

	comment, err := svc.AddComment(context.Background(), "a.mp4", "user-1", "  ", "nice video")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment != stored {
		t.Error("returned comment must be the stored one")
	}
	if comment.Username != model.AnonymousUsername {
		t.Errorf("username = %q, want fallback %q", comment.Username, model.AnonymousUsername)
	}
	if comment.ID == "" || comment.CreatedAt.IsZero() {
		t.Errorf("comment missing identity fields: %+v", comment)
	}
}

func TestInteractionService_AddComment_Validation(t *testing.T) {
	svc := NewInteractionService(&mockLikeRepository{}, &mockCommentRepository{})

	tests := []struct {
		name      string
		videoKey  string
		content   string
		wantField string
	}{
		{"empty key", "", "hi", "key"},
		{"blank content", "a.mp4", "   \n", "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddComment(context.Background(), tt.videoKey, "u", "alice", tt.content)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestInteractionService_ListComments(t *testing.T) {
	c := model.NewComment("a.mp4", "u", "alice", "hi")
	comments := &mockCommentRepository{
		listFunc: func(ctx context.Context, videoKey string, limit, offset int) ([]*model.Comment, error) {
			if limit != 10 || offset != 5 {
				t.Errorf("paging = (%d, %d), want (10, 5)", limit, offset)
			}
			return []*model.Comment{c}, nil
		},
		countFunc: func(ctx context.Context, videoKey string) (int, error) {
			return 42, nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, comments)

	page, err := svc.ListComments(context.Background(), "a.mp4", 10, 5)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(page.Comments) != 1 || page.Total != 42 {
		t.Errorf("page = %+v, want one comment with total 42", page)
	}
}

func TestInteractionService_ListComments_Validation(t *testing.T) {
	svc := NewInteractionService(&mockLikeRepository{}, &mockCommentRepository{})

	tests := []struct {
		name          string
		limit, offset int
		wantField     string
	}{
		{"limit too large", 101, 0, "limit"},
		{"negative limit", -1, 0, "limit"},
		{"negative offset", 10, -1, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListComments(context.Background(), "a.mp4", tt.limit, tt.offset)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
