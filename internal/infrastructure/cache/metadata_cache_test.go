package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestRedisMetadataCache_GetSet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisMetadataCache(client)
	ctx := context.Background()

	record := model.NewVideoMetadata("videos/a.mp4", "en", model.LocaleEntry{
		Title:       "Episode One",
		Description: "pilot",
		CoverURL:    "covers/a.mp4-en.jpg",
	})

	if err := cache.Set(ctx, record, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "videos/a.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}

	if got.VideoKey != record.VideoKey {
		t.Errorf("VideoKey = %q, want %q", got.VideoKey, record.VideoKey)
	}
	entry := got.Locales["en"]
	if entry.Title != "Episode One" || entry.Description != "pilot" || entry.CoverURL != "covers/a.mp4-en.jpg" {
		t.Errorf("en entry = %+v", entry)
	}
	if len(got.Locales) != len(model.SupportedLocales) {
		t.Errorf("locale count = %d, want %d", len(got.Locales), len(model.SupportedLocales))
	}
}

func TestRedisMetadataCache_Get_CacheMiss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisMetadataCache(client)

	got, err := cache.Get(context.Background(), "missing.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cache miss, got %v", got)
	}
}

func TestRedisMetadataCache_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisMetadataCache(client)
	ctx := context.Background()

	record := model.NewVideoMetadata("a.mp4", "zh", model.LocaleEntry{Title: "标题"})
	if err := cache.Set(ctx, record, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cache.Delete(ctx, "a.mp4"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := cache.Get(ctx, "a.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestRedisMetadataCache_Delete_NonExistent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisMetadataCache(client)

	if err := cache.Delete(context.Background(), "missing.mp4"); err != nil {
		t.Fatalf("Delete failed for non-existent key: %v", err)
	}
}
