package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnonymousUsername is used when a commenter leaves the name blank.
const AnonymousUsername = "Anonymous"

// Comment is one entry in a video's append-only comment log.
type Comment struct {
	ID        string
	VideoKey  string
	UserID    string
	Username  string
	Content   string
	CreatedAt time.Time
}

// NewComment builds a comment with a fresh id. The username falls back to
// AnonymousUsername when blank after trimming; content is trimmed but its
// non-emptiness is the caller's responsibility.
func NewComment(videoKey, userID, username, content string) *Comment {
	username = strings.TrimSpace(username)
	if username == "" {
		username = AnonymousUsername
	}
	return &Comment{
		ID:        uuid.NewString(),
		VideoKey:  videoKey,
		UserID:    userID,
		Username:  username,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}
}
