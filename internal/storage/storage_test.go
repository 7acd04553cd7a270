package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	perrors "github.com/petpost/petpost/internal/errors"
)

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "storage.json")
	store := NewFile(path)

	if _, ok, err := store.GetItem(ctx, KeyUserID); err != nil || ok {
		t.Fatalf("GetItem on missing file = ok %v, err %v; want absent, nil", ok, err)
	}

	if err := store.SetItem(ctx, KeyUserID, "user-7"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}
	if err := store.SetItem(ctx, KeyToken, "tok"); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	// A second store on the same file sees the values.
	other := NewFile(path)
	v, ok, err := other.GetItem(ctx, KeyUserID)
	if err != nil || !ok || v != "user-7" {
		t.Errorf("GetItem() = %q, %v, %v; want user-7, true, nil", v, ok, err)
	}

	if err := other.RemoveItem(ctx, KeyUserID); err != nil {
		t.Fatalf("RemoveItem() failed: %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, KeyUserID); ok {
		t.Error("userId should be gone after RemoveItem")
	}
	if v, ok, _ := store.GetItem(ctx, KeyToken); !ok || v != "tok" {
		t.Error("token should survive removal of another key")
	}

	if err := store.RemoveItem(ctx, "never-set"); err != nil {
		t.Errorf("removing a missing key should not fail: %v", err)
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewFile(path).GetItem(context.Background(), KeyUserID)
	if err == nil {
		t.Fatal("expected error for corrupt storage file")
	}
	if !perrors.Is(err, perrors.KindIO) {
		t.Errorf("expected KindIO, got %v", err)
	}
}

func TestFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFile(filepath.Join(t.TempDir(), "storage.json"))
	if err := store.SetItem(ctx, KeyUserID, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("SetItem with canceled context = %v, want context.Canceled", err)
	}
}

func TestFile_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewFile(filepath.Join(t.TempDir(), "storage.json"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.SetItem(ctx, KeyToken, string(rune('a'+n)))
		}(i)
	}
	wg.Wait()

	if _, ok, err := store.GetItem(ctx, KeyToken); err != nil || !ok {
		t.Errorf("expected a token after concurrent writes, got ok=%v err=%v", ok, err)
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(map[string]string{KeyUserID: "abc"})

	if v, ok, _ := m.GetItem(ctx, KeyUserID); !ok || v != "abc" {
		t.Errorf("seeded value missing, got %q %v", v, ok)
	}
	_ = m.RemoveItem(ctx, KeyUserID)
	if _, ok, _ := m.GetItem(ctx, KeyUserID); ok {
		t.Error("value should be removed")
	}

	m.GetErr = errors.New("disk on fire")
	if _, _, err := m.GetItem(ctx, KeyUserID); err == nil {
		t.Error("GetErr should be returned")
	}

	var zero Memory
	if err := zero.SetItem(ctx, "k", "v"); err != nil {
		t.Errorf("zero Memory should accept writes: %v", err)
	}
}
