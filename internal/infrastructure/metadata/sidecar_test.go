package metadata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
)

// fakeObjectStorage is an in-memory ObjectStorage for store tests.
type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	downloadErr error
	uploadErr   error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult, error) {
	return &repository.ListResult{}, nil
}

func (f *fakeObjectStorage) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://example.com/upload", nil
}

func (f *fakeObjectStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://example.com/download", nil
}

func (f *fakeObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.objects[key] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeObjectStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	f.mu.Lock()
	data, ok := f.objects[key]
	f.mu.Unlock()
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.objects, key)
	f.mu.Unlock()
	return nil
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore(newFakeObjectStorage())

	_, err := store.Get(context.Background(), "videos/a.mp4")
	if !errors.Is(err, repository.ErrMetadataNotFound) {
		t.Fatalf("expected ErrMetadataNotFound, got %v", err)
	}
}

func TestStore_Upsert_CreatesRecordWithAllLocales(t *testing.T) {
	storage := newFakeObjectStorage()
	store := NewStore(storage)
	ctx := context.Background()

	record, err := store.Upsert(ctx, "videos/a.mp4", "en", model.LocaleEntry{Title: "Episode One", Description: "pilot"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if len(record.Locales) != len(model.SupportedLocales) {
		t.Errorf("expected %d locales, got %d", len(model.SupportedLocales), len(record.Locales))
	}

	// The sidecar must live at the derived key, beside the video.
	if _, ok := storage.objects["videos/a.mp4.metadata.json"]; !ok {
		t.Error("sidecar blob not written at derived key")
	}

	got, err := store.Get(ctx, "videos/a.mp4")
	if err != nil {
		t.Fatalf("Get after Upsert failed: %v", err)
	}
	if got.Locales["en"].Title != "Episode One" {
		t.Errorf("en title = %q, want %q", got.Locales["en"].Title, "Episode One")
	}
}

func TestStore_Upsert_MergeRetainsCover(t *testing.T) {
	store := NewStore(newFakeObjectStorage())
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "X", CoverURL: "c.jpg"}); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	record, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "A", Description: "B"})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	entry := record.Locales["en"]
	if entry.Title != "A" || entry.Description != "B" {
		t.Errorf("unexpected entry after merge: %+v", entry)
	}
	if entry.CoverURL != "c.jpg" {
		t.Errorf("CoverURL = %q, want retained %q", entry.CoverURL, "c.jpg")
	}
}

func TestStore_Upsert_Idempotent(t *testing.T) {
	store := NewStore(newFakeObjectStorage())
	ctx := context.Background()

	first, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "A", Description: "B"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	second, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "A", Description: "B"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if second.Locales["en"] != first.Locales["en"] {
		t.Errorf("locale content changed: %+v vs %+v", first.Locales["en"], second.Locales["en"])
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", second.UpdatedAt, first.UpdatedAt)
	}
}

func TestStore_Upsert_OtherLocaleUntouched(t *testing.T) {
	store := NewStore(newFakeObjectStorage())
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "English"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	record, err := store.Upsert(ctx, "a.mp4", "zh", model.LocaleEntry{Title: "中文"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if record.Locales["en"].Title != "English" {
		t.Errorf("en entry clobbered: %+v", record.Locales["en"])
	}
	if record.Locales["zh"].Title != "中文" {
		t.Errorf("zh entry missing: %+v", record.Locales["zh"])
	}
}

func TestStore_Upsert_ConcurrentSameKey(t *testing.T) {
	store := NewStore(newFakeObjectStorage())
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, locale := range model.SupportedLocales {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Upsert(ctx, "a.mp4", locale, model.LocaleEntry{Title: "title-" + locale.String()}); err != nil {
				t.Errorf("Upsert(%s) failed: %v", locale, err)
			}
		}()
	}
	wg.Wait()

	record, err := store.Get(ctx, "a.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// Per-key serialization means no locale's write may be lost.
	for _, locale := range model.SupportedLocales {
		if record.Locales[locale].Title != "title-"+locale.String() {
			t.Errorf("lost update for locale %s: %+v", locale, record.Locales[locale])
		}
	}
}

func TestStore_GetBatch_AbsentKeysOmitted(t *testing.T) {
	store := NewStore(newFakeObjectStorage())
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "a.mp4", "en", model.LocaleEntry{Title: "A"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	results, err := store.GetBatch(ctx, []string{"a.mp4", "b.mp4", "c.mp4"})
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 record, got %d", len(results))
	}
	if _, ok := results["a.mp4"]; !ok {
		t.Error("a.mp4 missing from batch result")
	}
}

func TestStore_GetBatch_FetchFailureTreatedAsAbsence(t *testing.T) {
	storage := newFakeObjectStorage()
	storage.downloadErr = errors.New("gateway exploded")
	store := NewStore(storage)

	results, err := store.GetBatch(context.Background(), []string{"a.mp4", "b.mp4"})
	if err != nil {
		t.Fatalf("GetBatch must not propagate per-key failures, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result map, got %d entries", len(results))
	}
}

func TestSidecarKey(t *testing.T) {
	if got := SidecarKey("folder/a.mp4"); got != "folder/a.mp4.metadata.json" {
		t.Errorf("SidecarKey = %q", got)
	}
}
