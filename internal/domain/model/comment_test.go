package model

import "testing"

func TestNewComment_Defaults(t *testing.T) {
	c := NewComment("a.mp4", "user-1", "  ", "  hello  ")

	if c.ID == "" {
		t.Error("expected a fresh id")
	}
	if c.Username != AnonymousUsername {
		t.Errorf("Username = %q, want %q", c.Username, AnonymousUsername)
	}
	if c.Content != "hello" {
		t.Errorf("Content = %q, want %q", c.Content, "hello")
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
}

func TestNewComment_UniqueIDs(t *testing.T) {
	a := NewComment("a.mp4", "u", "alice", "first")
	b := NewComment("a.mp4", "u", "alice", "second")
	if a.ID == b.ID {
		t.Errorf("expected unique ids, both %q", a.ID)
	}
}
