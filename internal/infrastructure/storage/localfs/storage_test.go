package localfs

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestSaveOpenRemoveRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := storage.Save(ctx, "a1_clip.mp4", bytes.NewBufferString("frames")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := storage.Open(ctx, "a1_clip.mp4")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	raw, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(raw) != "frames" {
		t.Fatalf("unexpected content %q", raw)
	}

	if err := storage.Remove(ctx, "a1_clip.mp4"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := storage.Open(ctx, "a1_clip.mp4"); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "../etc/passwd", "dir/inner.mp4", ".."} {
		if err := storage.Save(ctx, key, bytes.NewBufferString("x")); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("key %q: expected invalid input, got %v", key, err)
		}
	}
}

func TestRemoveMissingKeyIsNoop(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := storage.Remove(context.Background(), "missing.mp4"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
}
