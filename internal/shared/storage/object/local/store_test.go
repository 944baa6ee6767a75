package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"career-backend/internal/shared/storage/object"
)

func TestStoreCreatesDirectoryLazily(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data", "nested")
	store := New(base)
	ctx := context.Background()

	if _, err := os.Stat(base); !os.IsNotExist(err) {
		t.Fatalf("expected base dir to be absent before first write")
	}
	if _, err := store.Read(ctx, "users.json"); !errors.Is(err, object.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := store.Write(ctx, "users.json", "application/json", []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := store.Read(ctx, "users.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `[]` {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.json", "/etc/passwd", ""} {
		if err := store.Write(context.Background(), key, "", []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(t.TempDir()).Read(ctx, "users.json"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
