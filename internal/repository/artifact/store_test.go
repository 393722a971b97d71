package artifact

import (
	"context"
	"errors"
	"testing"
)

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "proj", "analysis.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before put, got %v", err)
	}

	body := []byte(`{"metadata":{"project_name":"demo"}}`)
	if err := s.Put(ctx, "proj", "analysis.json", body); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := s.Get(ctx, "proj", "analysis.json")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("content mismatch: %q", got)
	}

	if err := s.Put(ctx, "proj", "traces/run1.json", []byte("{}")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	paths, err := s.List(ctx, "proj")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "analysis.json" || paths[1] != "traces/run1.json" {
		t.Fatalf("unexpected listing: %v", paths)
	}

	if err := s.Put(ctx, "", "analysis.json", body); err == nil {
		t.Fatalf("expected error for empty project_id")
	}
	if err := s.Put(ctx, "../escape", "analysis.json", body); err == nil {
		t.Fatalf("expected error for traversal in project_id")
	}
	if err := s.Put(ctx, "proj", "../escape.json", body); err == nil {
		t.Fatalf("expected error for traversal in path")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestDiskStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewDiskStore(t.TempDir()))
}

func TestDiskStoreListMissingProject(t *testing.T) {
	s := NewDiskStore(t.TempDir())
	paths, err := s.List(context.Background(), "never-written")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected empty listing, got %v", paths)
	}
}
